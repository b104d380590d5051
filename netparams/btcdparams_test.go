package netparams

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"
)

// TestBtcdParams checks the projection onto btcd's parameter type.
func TestBtcdParams(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	test, err := r.Params(TestNet)
	require.NoError(t, err)

	params := test.BtcdParams()
	require.Equal(t, "testnet", params.Name)
	require.Equal(t, test.WireNet(), params.Net)
	require.Equal(t, "64321", params.DefaultPort)
	require.Equal(t, test.GenesisHash(), *params.GenesisHash)
	require.Equal(t, test.PowLimit(), params.PowLimit)
	require.Equal(t, uint32(0x1f00ffff), params.PowLimitBits)
	require.Equal(t, byte(65), params.PubKeyHashAddrID)
	require.Equal(t, byte(127), params.ScriptHashAddrID)
	require.Equal(t, byte(58), params.PrivateKeyID)
	require.Equal(t, [4]byte{0x04, 0x35, 0x19, 0x55}, params.HDPublicKeyID)
	require.Equal(t, [4]byte{0x04, 0x35, 0x25, 0x63}, params.HDPrivateKeyID)
}

// TestRegisterBtcdParams asserts that registering twice is not an error and
// that the extended key versions become known to btcd.
func TestRegisterBtcdParams(t *testing.T) {
	t.Parallel()

	p := newTestRegistry(t).Current()

	params, err := RegisterBtcdParams(p)
	require.NoError(t, err)
	require.Equal(t, p.WireNet(), params.Net)

	_, err = RegisterBtcdParams(p)
	require.NoError(t, err)

	pub, err := chaincfg.HDPrivateKeyToPublicKeyID(
		params.HDPrivateKeyID[:],
	)
	require.NoError(t, err)
	require.Equal(t, params.HDPublicKeyID[:], pub)
}
