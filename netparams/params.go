package netparams

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// NetworkID is the discriminant used by callers that need to branch on the
// identity of a network without depending on its concrete parameters.
type NetworkID uint8

const (
	// MainNet identifies the production network.
	MainNet NetworkID = iota

	// TestNet identifies the public test network.
	TestNet
)

// String returns a human readable name for the network.
func (n NetworkID) String() string {
	switch n {
	case MainNet:
		return "mainnet"
	case TestNet:
		return "testnet"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(n))
	}
}

// AddressKind enumerates the kinds of base58 encoded strings that carry a
// network specific version prefix.
type AddressKind uint8

const (
	// PubKeyAddress is a pay-to-pubkey-hash address.
	PubKeyAddress AddressKind = iota

	// ScriptAddress is a pay-to-script-hash address.
	ScriptAddress

	// SecretKey is a wallet import format private key.
	SecretKey

	// ExtPublicKey is a BIP32 extended public key.
	ExtPublicKey

	// ExtSecretKey is a BIP32 extended private key.
	ExtSecretKey

	// numAddressKinds must remain the last entry.
	numAddressKinds
)

// AddressKinds lists every address kind in declaration order.
var AddressKinds = []AddressKind{
	PubKeyAddress, ScriptAddress, SecretKey, ExtPublicKey, ExtSecretKey,
}

// String returns a human readable name for the address kind.
func (k AddressKind) String() string {
	switch k {
	case PubKeyAddress:
		return "pubkey-address"
	case ScriptAddress:
		return "script-address"
	case SecretKey:
		return "secret-key"
	case ExtPublicKey:
		return "ext-public-key"
	case ExtSecretKey:
		return "ext-secret-key"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Params holds the consensus relevant parameters of a single network. A
// Params value is fully populated by the registry's initialization step and
// never modified afterwards, so it may be shared freely between goroutines.
// All accessors that expose reference types hand out copies.
type Params struct {
	net  NetworkID
	name string

	protocolMagic [4]byte
	alertPubKey   []byte

	defaultPort uint16
	rpcPort     uint16

	powLimit     *big.Int
	powLimitBits uint32

	prefixes [numAddressKinds][]byte

	genesisBlock *Block
	genesisHash  chainhash.Hash

	fixedSeeds []*wire.NetAddress

	lastPoWBlock  int32
	dataDirSuffix string
}

// Net returns the identity tag of the network.
func (p *Params) Net() NetworkID {
	return p.net
}

// Name returns the canonical name of the network.
func (p *Params) Name() string {
	return p.name
}

// ProtocolMagic returns the four bytes that start every wire message on this
// network.
func (p *Params) ProtocolMagic() [4]byte {
	return p.protocolMagic
}

// WireNet returns the protocol magic in the little endian integer form used
// by the btcd wire package.
func (p *Params) WireNet() wire.BitcoinNet {
	return wire.BitcoinNet(binary.LittleEndian.Uint32(p.protocolMagic[:]))
}

// AlertPubKey returns the serialized public key that signs alert messages.
func (p *Params) AlertPubKey() []byte {
	return append([]byte(nil), p.alertPubKey...)
}

// DefaultPort returns the default peer-to-peer listening port.
func (p *Params) DefaultPort() uint16 {
	return p.defaultPort
}

// RPCPort returns the default RPC listening port.
func (p *Params) RPCPort() uint16 {
	return p.rpcPort
}

// PowLimit returns the highest proof of work target a block hash may have.
func (p *Params) PowLimit() *big.Int {
	return new(big.Int).Set(p.powLimit)
}

// PowLimitBits returns PowLimit in compact form.
func (p *Params) PowLimitBits() uint32 {
	return p.powLimitBits
}

// Prefix returns the base58 version prefix of the given address kind. Nil is
// returned for an unknown kind.
func (p *Params) Prefix(kind AddressKind) []byte {
	if kind >= numAddressKinds {
		return nil
	}

	return append([]byte(nil), p.prefixes[kind]...)
}

// GenesisBlock returns a copy of the network's genesis block.
func (p *Params) GenesisBlock() *Block {
	return p.genesisBlock.Copy()
}

// GenesisHash returns the identifying hash of the genesis block.
func (p *Params) GenesisHash() chainhash.Hash {
	return p.genesisHash
}

// FixedSeeds returns the compiled-in bootstrap peers in table order.
func (p *Params) FixedSeeds() []*wire.NetAddress {
	seeds := make([]*wire.NetAddress, 0, len(p.fixedSeeds))
	for _, seed := range p.fixedSeeds {
		addr := *seed
		addr.IP = append([]byte(nil), seed.IP...)
		seeds = append(seeds, &addr)
	}

	return seeds
}

// LastPoWBlock returns the last height at which blocks are produced by proof
// of work.
func (p *Params) LastPoWBlock() int32 {
	return p.lastPoWBlock
}

// IsProofOfWork reports whether a block at the given height belongs to the
// proof of work phase of the chain.
func (p *Params) IsProofOfWork(height int32) bool {
	return height <= p.lastPoWBlock
}

// DataDirSuffix returns the directory name that separates this network's
// on-disk state. It is empty for the main network.
func (p *Params) DataDirSuffix() string {
	return p.dataDirSuffix
}

// String returns the network name.
func (p *Params) String() string {
	return p.name
}
