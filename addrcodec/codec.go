package addrcodec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/galaxycoin/galaxyd/netparams"
)

var (
	// ErrWrongNetwork is returned when a well formed string carries a
	// version prefix that does not belong to the codec's network.
	ErrWrongNetwork = errors.New("encoded for a different network")

	// ErrUnknownFormat is returned when a string does not decode to any
	// known address or key layout.
	ErrUnknownFormat = errors.New("unknown encoding")
)

const (
	// hash160Size is the payload size of pay-to-pubkey-hash and
	// pay-to-script-hash addresses.
	hash160Size = 20

	// extendedKeySize is the serialized size of a BIP32 extended key
	// without its checksum.
	extendedKeySize = 78

	// wifUncompressedSize and wifCompressedSize are the payload sizes of
	// a WIF private key without and with the compression marker.
	wifUncompressedSize = btcec.PrivKeyBytesLen
	wifCompressedSize   = btcec.PrivKeyBytesLen + 1
)

// Codec encodes and decodes addresses and keys for a single network.
type Codec struct {
	params *netparams.Params
	btcd   *chaincfg.Params
}

// New returns a codec for the given network. The network is registered with
// btcd so that extended private keys can be neutered.
func New(params *netparams.Params) (*Codec, error) {
	btcdParams, err := netparams.RegisterBtcdParams(params)
	if err != nil {
		return nil, fmt.Errorf("unable to register %v: %w", params, err)
	}

	log.Debugf("Address codec ready for %v: pubkey=%x, script=%x",
		params, params.Prefix(netparams.PubKeyAddress),
		params.Prefix(netparams.ScriptAddress))

	return &Codec{
		params: params,
		btcd:   btcdParams,
	}, nil
}

// Params returns the network the codec was created for.
func (c *Codec) Params() *netparams.Params {
	return c.params
}

// ChainParams returns the btcd projection of the codec's network.
func (c *Codec) ChainParams() *chaincfg.Params {
	return c.btcd
}

// PubKeyHashAddress returns the pay-to-pubkey-hash address of hash160.
func (c *Codec) PubKeyHashAddress(hash160 []byte) (string, error) {
	addr, err := btcutil.NewAddressPubKeyHash(hash160, c.btcd)
	if err != nil {
		return "", err
	}

	return addr.EncodeAddress(), nil
}

// ScriptHashAddress returns the pay-to-script-hash address of hash160.
func (c *Codec) ScriptHashAddress(hash160 []byte) (string, error) {
	addr, err := btcutil.NewAddressScriptHashFromHash(hash160, c.btcd)
	if err != nil {
		return "", err
	}

	return addr.EncodeAddress(), nil
}

// PubKeyAddress returns the pay-to-pubkey-hash address of the compressed
// serialization of pub.
func (c *Codec) PubKeyAddress(pub *btcec.PublicKey) (string, error) {
	return c.PubKeyHashAddress(btcutil.Hash160(pub.SerializeCompressed()))
}

// DecodeAddress decodes a pay-to-pubkey-hash or pay-to-script-hash address.
func (c *Codec) DecodeAddress(addr string) (btcutil.Address, error) {
	kind, err := c.Identify(addr)
	if err != nil {
		return nil, err
	}
	if kind != netparams.PubKeyAddress && kind != netparams.ScriptAddress {
		return nil, fmt.Errorf("%w: %v is not an address", ErrUnknownFormat,
			kind)
	}

	decoded, err := btcutil.DecodeAddress(addr, c.btcd)
	if err != nil {
		return nil, err
	}
	if !decoded.IsForNet(c.btcd) {
		return nil, ErrWrongNetwork
	}

	return decoded, nil
}

// ScriptAddresses returns the addresses an output script pays to, encoded
// for the codec's network.
func (c *Codec) ScriptAddresses(pkScript []byte) ([]string, error) {
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, c.btcd)
	if err != nil {
		return nil, err
	}
	if class == txscript.NonStandardTy {
		return nil, fmt.Errorf("%w: non-standard script", ErrUnknownFormat)
	}

	encoded := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		encoded = append(encoded, addr.EncodeAddress())
	}

	return encoded, nil
}

// EncodePrivateKey returns the WIF encoding of priv.
func (c *Codec) EncodePrivateKey(priv *btcec.PrivateKey,
	compress bool) (string, error) {

	wif, err := btcutil.NewWIF(priv, c.btcd, compress)
	if err != nil {
		return "", err
	}

	return wif.String(), nil
}

// DecodePrivateKey decodes a WIF private key of the codec's network.
func (c *Codec) DecodePrivateKey(encoded string) (*btcutil.WIF, error) {
	wif, err := btcutil.DecodeWIF(encoded)
	if err != nil {
		return nil, err
	}
	if !wif.IsForNet(c.btcd) {
		return nil, ErrWrongNetwork
	}

	return wif, nil
}

// NewMaster derives a BIP32 master key of the codec's network from seed.
func (c *Codec) NewMaster(seed []byte) (*hdkeychain.ExtendedKey, error) {
	return hdkeychain.NewMaster(seed, c.btcd)
}

// ParseExtendedKey decodes a BIP32 extended key of the codec's network.
func (c *Codec) ParseExtendedKey(encoded string) (*hdkeychain.ExtendedKey,
	error) {

	key, err := hdkeychain.NewKeyFromString(encoded)
	if err != nil {
		return nil, err
	}
	if !key.IsForNet(c.btcd) {
		return nil, ErrWrongNetwork
	}

	return key, nil
}

// Identify classifies a base58 encoded string by its layout and version
// prefix. Strings whose layout is known but whose prefix belongs to no kind
// of the codec's network yield ErrWrongNetwork.
func (c *Codec) Identify(encoded string) (netparams.AddressKind, error) {
	payload, version, err := base58.CheckDecode(encoded)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}

	// CheckDecode splits off a single version byte, so the remaining
	// three bytes of an extended key version lead the payload.
	var candidates []netparams.AddressKind
	switch {
	case len(payload) == hash160Size:
		candidates = []netparams.AddressKind{
			netparams.PubKeyAddress, netparams.ScriptAddress,
		}

	case len(payload) == wifUncompressedSize ||
		len(payload) == wifCompressedSize &&
			payload[wifCompressedSize-1] == 0x01:

		candidates = []netparams.AddressKind{netparams.SecretKey}

	case len(payload) == extendedKeySize-1:
		candidates = []netparams.AddressKind{
			netparams.ExtPublicKey, netparams.ExtSecretKey,
		}

	default:
		return 0, fmt.Errorf("%w: %d byte payload", ErrUnknownFormat,
			len(payload))
	}

	raw := append([]byte{version}, payload...)
	for _, kind := range candidates {
		if bytes.HasPrefix(raw, c.params.Prefix(kind)) {
			return kind, nil
		}
	}

	return 0, ErrWrongNetwork
}
