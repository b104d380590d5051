package netparams

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// netRecipe is the complete description from which a Params value is built.
type netRecipe struct {
	net           NetworkID
	name          string
	protocolMagic [4]byte
	alertPubKey   string
	defaultPort   uint16
	rpcPort       uint16

	// powLimitShift is the number of leading zero bits of the proof of
	// work limit, i.e. the limit is ~uint256(0) >> powLimitShift.
	powLimitShift uint

	dataDirSuffix string
	genesis       genesisRecipe
	prefixes      [numAddressKinds][]byte
	seedTable     []byte
	lastPoWBlock  int32
}

// netOverrides holds the values a derived network replaces in its base
// recipe. Unset options keep the base value. The seed table is the one
// exception: a derived network never inherits its base's seeds.
type netOverrides struct {
	net           NetworkID
	name          string
	protocolMagic fn.Option[[4]byte]
	alertPubKey   fn.Option[string]
	defaultPort   fn.Option[uint16]
	rpcPort       fn.Option[uint16]
	powLimitShift fn.Option[uint]
	dataDirSuffix fn.Option[string]
	genesisNonce  fn.Option[uint32]
	genesisHash   fn.Option[string]
	prefixes      fn.Option[[numAddressKinds][]byte]
	seedTable     []byte
	lastPoWBlock  fn.Option[int32]
}

// apply returns a copy of base with the overrides applied.
func (o *netOverrides) apply(base netRecipe) netRecipe {
	r := base
	r.net = o.net
	r.name = o.name

	o.protocolMagic.WhenSome(func(m [4]byte) { r.protocolMagic = m })
	o.alertPubKey.WhenSome(func(k string) { r.alertPubKey = k })
	o.defaultPort.WhenSome(func(p uint16) { r.defaultPort = p })
	o.rpcPort.WhenSome(func(p uint16) { r.rpcPort = p })
	o.powLimitShift.WhenSome(func(s uint) { r.powLimitShift = s })
	o.dataDirSuffix.WhenSome(func(s string) { r.dataDirSuffix = s })
	o.genesisNonce.WhenSome(func(n uint32) { r.genesis.nonce = n })
	o.genesisHash.WhenSome(func(h string) { r.genesis.hash = h })
	o.prefixes.WhenSome(func(p [numAddressKinds][]byte) {
		r.prefixes = p
	})
	o.lastPoWBlock.WhenSome(func(h int32) { r.lastPoWBlock = h })

	r.seedTable = o.seedTable

	return r
}

// powLimitFromShift returns ~uint256(0) >> shift.
func powLimitFromShift(shift uint) *big.Int {
	limit := new(big.Int).Lsh(big.NewInt(1), 256)
	limit.Sub(limit, big.NewInt(1))

	return limit.Rsh(limit, shift)
}

// newParams builds and verifies the parameters of one network from a base
// recipe and the overrides that distinguish it from that base.
func newParams(base netRecipe, overrides *netOverrides,
	cfg *Config) (*Params, error) {

	r := overrides.apply(base)

	alertPubKey, err := hex.DecodeString(r.alertPubKey)
	if err != nil {
		return nil, fmt.Errorf("%v: invalid alert key: %w", r.net, err)
	}

	if err := checkPrefixes(r.net, &r.prefixes); err != nil {
		return nil, err
	}

	powLimit := powLimitFromShift(r.powLimitShift)
	powLimitBits := blockchain.BigToCompact(powLimit)

	genesis, genesisHash, err := buildGenesis(
		r.net, &r.genesis, powLimitBits,
	)
	if err != nil {
		return nil, err
	}

	p := &Params{
		net:           r.net,
		name:          r.name,
		protocolMagic: r.protocolMagic,
		alertPubKey:   alertPubKey,
		defaultPort:   r.defaultPort,
		rpcPort:       r.rpcPort,
		powLimit:      powLimit,
		powLimitBits:  powLimitBits,
		genesisBlock:  genesis,
		genesisHash:   genesisHash,
		fixedSeeds: ConvertSeeds(
			ParseSeedTable(r.seedTable), cfg.Clock, cfg.Rand,
		),
		lastPoWBlock:  r.lastPoWBlock,
		dataDirSuffix: r.dataDirSuffix,
	}
	for kind, prefix := range r.prefixes {
		p.prefixes[kind] = append([]byte(nil), prefix...)
	}

	log.Infof("Verified %v parameters: genesis=%v, bits=%08x, seeds=%d",
		p.net, p.genesisHash, p.powLimitBits, len(p.fixedSeeds))

	return p, nil
}

// checkPrefixes ensures that every address kind has a prefix and that no two
// kinds share the same one.
func checkPrefixes(net NetworkID, prefixes *[numAddressKinds][]byte) error {
	seen := make(map[string]AddressKind, numAddressKinds)
	for _, kind := range AddressKinds {
		prefix := prefixes[kind]
		if len(prefix) == 0 {
			return &InvariantViolation{
				Net:   net,
				Field: kind.String() + " prefix",
				Want:  "non-empty",
				Got:   "empty",
			}
		}

		if other, ok := seen[string(prefix)]; ok {
			return &InvariantViolation{
				Net:   net,
				Field: kind.String() + " prefix",
				Want:  "unique",
				Got: fmt.Sprintf("%x shared with %v", prefix,
					other),
			}
		}
		seen[string(prefix)] = kind
	}

	return nil
}

// Config houses the collaborators used while building network parameters.
type Config struct {
	// Clock is the time source for seed address timestamps.
	Clock clock.Clock

	// Rand draws the per-seed timestamp offset.
	Rand RandSource
}

// DefaultConfig returns a Config using the wall clock and the system's
// cryptographic random source.
func DefaultConfig() *Config {
	return &Config{
		Clock: clock.NewDefaultClock(),
		Rand:  cryptoRandSource{},
	}
}
