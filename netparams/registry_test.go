package netparams

import (
	"math"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

// TestMainNetParams pins the main network constants.
func TestMainNetParams(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	p := r.Current()

	require.Equal(t, MainNet, p.Net())
	require.Equal(t, "mainnet", p.Name())
	require.Equal(t, [4]byte{0x19, 0xf3, 0x9a, 0x54}, p.ProtocolMagic())
	require.EqualValues(t, 0x549af319, p.WireNet())
	require.Equal(t, uint16(54321), p.DefaultPort())
	require.Equal(t, uint16(54320), p.RPCPort())
	require.Equal(t, uint32(0x1e0fffff), p.PowLimitBits())
	require.Equal(t, 236, p.PowLimit().BitLen())
	require.Equal(t, int32(100), p.LastPoWBlock())
	require.Empty(t, p.DataDirSuffix())
	require.Len(t, p.AlertPubKey(), 65)

	require.Equal(t,
		"000001e618e2bed97d574602b5dd51fbba827a600a4758461be8bcd162c4347d",
		p.GenesisHash().String(),
	)

	genesis := p.GenesisBlock()
	require.Equal(t, uint32(30074010), genesis.Header.Nonce)
	require.Equal(t, p.PowLimitBits(), genesis.Header.Bits)
	require.Equal(t, genesisMerkleRoot, genesis.Header.MerkleRoot.String())

	require.True(t, p.IsProofOfWork(100))
	require.False(t, p.IsProofOfWork(101))
}

// TestTestNetParams pins the test network constants and the values it
// replaces in the main network recipe.
func TestTestNetParams(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	p, err := r.Params(TestNet)
	require.NoError(t, err)

	// Looking up a network does not change the active one.
	require.Equal(t, MainNet, r.Current().Net())

	require.Equal(t, TestNet, p.Net())
	require.Equal(t, "testnet", p.Name())
	require.Equal(t, [4]byte{0x37, 0x19, 0xa7, 0x4c}, p.ProtocolMagic())
	require.Equal(t, uint16(64321), p.DefaultPort())
	require.Equal(t, uint16(64320), p.RPCPort())
	require.Equal(t, uint32(0x1f00ffff), p.PowLimitBits())
	require.Equal(t, int32(math.MaxInt32), p.LastPoWBlock())
	require.True(t, p.IsProofOfWork(math.MaxInt32))
	require.Equal(t, "testnet", p.DataDirSuffix())

	require.Equal(t,
		"00000ad57b1a3a80607a27185838b037a37224dbc0db5b7d49878e733b4914e7",
		p.GenesisHash().String(),
	)

	// The coinbase is shared with the main network.
	main := r.Current()
	require.Equal(t,
		main.GenesisBlock().Header.MerkleRoot,
		p.GenesisBlock().Header.MerkleRoot,
	)
	require.NotEqual(t, main.GenesisHash(), p.GenesisHash())
	require.NotEqual(t, main.AlertPubKey(), p.AlertPubKey())
}

// TestGenesisMeetsPowLimit asserts that each genesis hash, read as a little
// endian number, is below its network's proof of work limit.
func TestGenesisMeetsPowLimit(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	for _, net := range []NetworkID{MainNet, TestNet} {
		p, err := r.Params(net)
		require.NoError(t, err)

		hash := p.GenesisHash()
		target := hashToBig(&hash)
		require.Negative(t, target.Cmp(p.PowLimit()), net.String())
	}
}

func hashToBig(hash *chainhash.Hash) *big.Int {
	buf := *hash
	for i := 0; i < chainhash.HashSize/2; i++ {
		buf[i], buf[chainhash.HashSize-1-i] =
			buf[chainhash.HashSize-1-i], buf[i]
	}

	return new(big.Int).SetBytes(buf[:])
}

// TestRegistrySelect covers switching the active network.
func TestRegistrySelect(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	require.Equal(t, MainNet, r.Current().Net())

	p, err := r.Select(TestNet)
	require.NoError(t, err)
	require.Equal(t, TestNet, p.Net())
	require.Same(t, p, r.Current())

	p, err = r.Select(MainNet)
	require.NoError(t, err)
	require.Same(t, p, r.Current())

	require.Equal(t, TestNet, r.SelectFromFlag(true).Net())
	require.Equal(t, TestNet, r.Current().Net())
	require.Equal(t, MainNet, r.SelectFromFlag(false).Net())

	_, err = r.Select(NetworkID(7))
	require.ErrorIs(t, err, ErrUnknownNetwork)
	require.ErrorContains(t, err, "unknown(7)")

	// A rejected selection leaves the active network untouched.
	require.Equal(t, MainNet, r.Current().Net())
}

// TestRegistryIndependent asserts that two registries do not share their
// active selection.
func TestRegistryIndependent(t *testing.T) {
	t.Parallel()

	a := newTestRegistry(t)
	b := newTestRegistry(t)

	a.SelectFromFlag(true)
	require.Equal(t, TestNet, a.Current().Net())
	require.Equal(t, MainNet, b.Current().Net())
}

// TestNewRegistryDefaultConfig builds a registry with the wall clock.
func TestNewRegistryDefaultConfig(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry(nil)
	require.NoError(t, err)
	require.NotEmpty(t, r.Current().FixedSeeds())
}

// TestNewParamsOverrides asserts that a derived network inherits everything
// its overrides leave unset, and that a bad override surfaces as an
// invariant violation.
func TestNewParamsOverrides(t *testing.T) {
	t.Parallel()

	cfg := &Config{Clock: clock.NewTestClock(testNow), Rand: constRand(0)}

	// Overriding only the ports keeps the main network genesis.
	o := netOverrides{
		net:  TestNet,
		name: "ports-only",
	}
	o.defaultPort = fn.Some[uint16](1)
	p, err := newParams(mainNetRecipe, &o, cfg)
	require.NoError(t, err)
	require.Equal(t, uint16(1), p.DefaultPort())
	require.Equal(t, uint16(54320), p.RPCPort())
	require.Equal(t,
		"000001e618e2bed97d574602b5dd51fbba827a600a4758461be8bcd162c4347d",
		p.GenesisHash().String(),
	)
	require.Empty(t, p.FixedSeeds())

	// Relaxing the limit without a new nonce breaks the genesis hash.
	o.powLimitShift = fn.Some[uint](16)
	_, err = newParams(mainNetRecipe, &o, cfg)
	require.ErrorIs(t, err, ErrInvariantViolation)

	// The test network overrides applied to the main network recipe are
	// the test network.
	p, err = newParams(mainNetRecipe, &testNetOverrides, cfg)
	require.NoError(t, err)
	require.Equal(t, TestNet, p.Net())
	require.Equal(t, uint16(64321), p.DefaultPort())
}
