package glxcfg

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/galaxycoin/galaxyd/netparams"
)

const (
	// DefaultConfigFilename is the default configuration file name galaxyd
	// tries to load.
	DefaultConfigFilename = "galaxyd.conf"

	// DefaultLogFilename is the default name of the rotating log file.
	DefaultLogFilename = "galaxyd.log"

	// DefaultDataDirname is the default name of the data directory.
	DefaultDataDirname = "data"

	// DefaultLogDirname is the default name of the log directory.
	DefaultLogDirname = "logs"

	// mainNetDirname is the per-network directory name of the main
	// network, whose parameters carry no data directory suffix.
	mainNetDirname = "mainnet"
)

// CleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
// This function is taken from https://github.com/btcsuite/btcd
func CleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		var homeDir string
		u, err := user.Current()
		if err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// NetworkDir returns the directory below root that holds the state of the
// given network, so that the networks never share on-disk data.
func NetworkDir(root string, params *netparams.Params) string {
	name := params.DataDirSuffix()
	if name == "" {
		name = mainNetDirname
	}

	return filepath.Join(root, name)
}
