package netparams

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestNetworkIDString covers the known and unknown network names.
func TestNetworkIDString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "mainnet", MainNet.String())
	require.Equal(t, "testnet", TestNet.String())
	require.Equal(t, "unknown(9)", NetworkID(9).String())
}

// TestPrefixesDistinct asserts that no two address kinds share a prefix
// within a network and that the two networks share no single byte prefix.
func TestPrefixesDistinct(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	main, err := r.Params(MainNet)
	require.NoError(t, err)
	test, err := r.Params(TestNet)
	require.NoError(t, err)

	for _, p := range []*Params{main, test} {
		seen := make(map[string]AddressKind)
		for _, kind := range AddressKinds {
			prefix := p.Prefix(kind)
			require.NotEmpty(t, prefix)

			other, dup := seen[string(prefix)]
			require.False(t, dup, "%v: %v and %v share a prefix", p,
				kind, other)
			seen[string(prefix)] = kind
		}
	}

	for _, kind := range AddressKinds {
		require.NotEqual(t, main.Prefix(kind), test.Prefix(kind),
			kind.String())
	}

	require.Equal(t, []byte{28}, main.Prefix(PubKeyAddress))
	require.Equal(t, []byte{65}, test.Prefix(PubKeyAddress))
	require.Equal(t, []byte{0x04, 0x35, 0x25, 0x63},
		test.Prefix(ExtSecretKey))
	require.Nil(t, main.Prefix(AddressKind(200)))
}

// TestCheckPrefixesProperty asserts that a prefix set passes verification
// exactly when every prefix is non-empty and unique.
func TestCheckPrefixesProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		var prefixes [numAddressKinds][]byte
		for _, kind := range AddressKinds {
			prefixes[kind] = rapid.SliceOfN(
				rapid.Byte(), 0, 2,
			).Draw(t, kind.String())
		}

		valid := true
		seen := make(map[string]struct{})
		for _, kind := range AddressKinds {
			prefix := prefixes[kind]
			if _, ok := seen[string(prefix)]; ok ||
				len(prefix) == 0 {

				valid = false
			}
			seen[string(prefix)] = struct{}{}
		}

		err := checkPrefixes(MainNet, &prefixes)
		if valid {
			require.NoError(t, err)
		} else {
			require.ErrorIs(t, err, ErrInvariantViolation)
		}
	})
}

// TestParamsImmutable asserts that mutating values handed out by accessors
// does not affect the parameters.
func TestParamsImmutable(t *testing.T) {
	t.Parallel()

	p := newTestRegistry(t).Current()

	p.PowLimit().SetInt64(1)
	require.Equal(t, 236, p.PowLimit().BitLen())

	p.AlertPubKey()[0] = 0
	require.Equal(t, byte(0x04), p.AlertPubKey()[0])

	p.Prefix(PubKeyAddress)[0] = 0
	require.Equal(t, []byte{28}, p.Prefix(PubKeyAddress))

	p.GenesisBlock().Header.Nonce = 0
	require.Equal(t, uint32(30074010), p.GenesisBlock().Header.Nonce)
}
