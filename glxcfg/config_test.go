package glxcfg

import (
	"path/filepath"
	"testing"

	"github.com/galaxycoin/galaxyd/netparams"
	"github.com/stretchr/testify/require"
)

// TestCleanAndExpandPath expands environment variables and the home
// directory.
func TestCleanAndExpandPath(t *testing.T) {
	t.Setenv("GALAXYD_TEST_DIR", "/srv/galaxy")
	t.Setenv("HOME", "/home/galaxy")

	require.Empty(t, CleanAndExpandPath(""))
	require.Equal(t, "/srv/galaxy/data",
		CleanAndExpandPath("$GALAXYD_TEST_DIR//data/"))
	require.Equal(t, "/srv/galaxy/data",
		CleanAndExpandPath("/srv/galaxy/data/../data"))
	require.True(t, filepath.IsAbs(CleanAndExpandPath("~/.galaxyd")))
}

// TestNetworkDir asserts that the networks never share a directory.
func TestNetworkDir(t *testing.T) {
	t.Parallel()

	registry, err := netparams.NewRegistry(nil)
	require.NoError(t, err)

	main, err := registry.Params(netparams.MainNet)
	require.NoError(t, err)
	test, err := registry.Params(netparams.TestNet)
	require.NoError(t, err)

	require.Equal(t, filepath.Join("/data", "mainnet"),
		NetworkDir("/data", main))
	require.Equal(t, filepath.Join("/data", "testnet"),
		NetworkDir("/data", test))
}
