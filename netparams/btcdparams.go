package netparams

import (
	"errors"
	"strconv"
	"sync"

	"github.com/btcsuite/btcd/chaincfg"
)

// BtcdParams projects the parameters onto btcd's chaincfg.Params so that the
// btcutil address, WIF and HD key code can be used with this network. Only
// the fields those packages read are populated. The genesis block is left
// unset as its transactions do not use the wire.MsgTx format.
func (p *Params) BtcdParams() *chaincfg.Params {
	genesisHash := p.genesisHash

	params := &chaincfg.Params{
		Name:             p.name,
		Net:              p.WireNet(),
		DefaultPort:      strconv.Itoa(int(p.defaultPort)),
		GenesisHash:      &genesisHash,
		PowLimit:         p.PowLimit(),
		PowLimitBits:     p.powLimitBits,
		PubKeyHashAddrID: p.prefixes[PubKeyAddress][0],
		ScriptHashAddrID: p.prefixes[ScriptAddress][0],
		PrivateKeyID:     p.prefixes[SecretKey][0],
	}
	copy(params.HDPublicKeyID[:], p.prefixes[ExtPublicKey])
	copy(params.HDPrivateKeyID[:], p.prefixes[ExtSecretKey])

	return params
}

// registerMtx serializes writes to btcd's unsynchronized network registry.
var registerMtx sync.Mutex

// RegisterBtcdParams registers the projection of the parameters with btcd's
// process wide network registry, which btcutil consults to map extended
// private key versions to their public counterparts. Registering the same
// network more than once is not an error.
func RegisterBtcdParams(p *Params) (*chaincfg.Params, error) {
	params := p.BtcdParams()

	registerMtx.Lock()
	err := chaincfg.Register(params)
	registerMtx.Unlock()

	switch {
	case errors.Is(err, chaincfg.ErrDuplicateNet):
		log.Tracef("Network %v already registered with btcd", p.name)

	case err != nil:
		return nil, err
	}

	return params, nil
}
