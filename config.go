package galaxyd

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/galaxycoin/galaxyd/build"
	"github.com/galaxycoin/galaxyd/glxcfg"
	"github.com/galaxycoin/galaxyd/netparams"
	"github.com/galaxycoin/galaxyd/signal"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultLogLevel = "info"

	// defaultBootstrapPeers is the number of bootstrap candidates gathered
	// at startup.
	defaultBootstrapPeers = 8
)

var (
	// DefaultGalaxyDir is the default directory where galaxyd tries to find
	// its configuration file and store its data. This is a directory in
	// the user's application data, for example:
	//   C:\Users\<username>\AppData\Local\Galaxyd on Windows
	//   ~/.galaxyd on Linux
	//   ~/Library/Application Support/Galaxyd on MacOS
	DefaultGalaxyDir = btcutil.AppDataDir("galaxyd", false)

	// DefaultConfigFile is the default full path of galaxyd's
	// configuration file.
	DefaultConfigFile = filepath.Join(
		DefaultGalaxyDir, glxcfg.DefaultConfigFilename,
	)

	defaultDataDir = filepath.Join(DefaultGalaxyDir, glxcfg.DefaultDataDirname)
	defaultLogDir  = filepath.Join(DefaultGalaxyDir, glxcfg.DefaultLogDirname)
)

// Config defines the configuration options for galaxyd.
//
// See LoadConfig for further details regarding the configuration
// loading+parsing process.
//
//nolint:lll
type Config struct {
	ShowVersion bool `short:"V" long:"version" description:"Display version information and exit"`

	GalaxyDir  string `long:"galaxydir" description:"The base directory that contains galaxyd's data, logs, configuration file, etc."`
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir    string `short:"b" long:"datadir" description:"The directory to store galaxyd's data within"`
	LogDir     string `long:"logdir" description:"Directory to log output."`

	MaxLogFiles    int    `long:"maxlogfiles" description:"Maximum logfiles to keep (0 for no rotation)"`
	MaxLogFileSize int    `long:"maxlogfilesize" description:"Maximum logfile size in MB"`
	LogCompressor  string `long:"logcompressor" description:"Compression algorithm to use when rotating logs." choice:"gzip" choice:"zstd"`

	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <global-level>,<subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`

	TestNet bool `long:"testnet" description:"Use the test network"`

	// We'll parse these 'raw' string arguments into real addresses in
	// ValidateConfig. We need to expose the 'raw' strings so the command
	// line library can access them. Only the parsed addresses should be
	// used!
	RawAddPeers []string `long:"addpeer" description:"Add a peer to bootstrap from ahead of the fixed seeds. If a port is not specified, the network's default port is used"`
	AddPeers    []*net.TCPAddr

	BootstrapPeers uint32 `long:"bootstrappeers" description:"The number of bootstrap candidates to gather at startup"`

	Prometheus glxcfg.Prometheus `group:"prometheus" namespace:"prometheus"`

	// LogWriter is the root logger that all of the daemon's subloggers
	// are hooked up to.
	LogWriter *build.RotatingLogWriter

	// Registry holds the parameters of every supported network.
	Registry *netparams.Registry

	// ActiveNetParams contains parameters of the selected network.
	ActiveNetParams *netparams.Params

	// networkDir is the path to the directory of the currently active
	// network. This path will hold the files related to each network.
	networkDir string
}

// DefaultConfig returns all default values for the Config struct.
func DefaultConfig() Config {
	return Config{
		GalaxyDir:      DefaultGalaxyDir,
		ConfigFile:     DefaultConfigFile,
		DataDir:        defaultDataDir,
		LogDir:         defaultLogDir,
		DebugLevel:     defaultLogLevel,
		MaxLogFiles:    build.DefaultMaxLogFiles,
		MaxLogFileSize: build.DefaultMaxLogFileSize,
		LogCompressor:  build.Gzip,
		BootstrapPeers: defaultBootstrapPeers,
		Prometheus:     glxcfg.DefaultPrometheus(),
		LogWriter:      build.NewRotatingLogWriter(),
	}
}

// LoadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
func LoadConfig(interceptor signal.Interceptor) (*Config, error) {
	// Pre-parse the command line options to pick up an alternative config
	// file.
	preCfg := DefaultConfig()
	if _, err := flags.Parse(&preCfg); err != nil {
		return nil, err
	}

	// Show the version and exit if the version flag was specified.
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	usageMessage := fmt.Sprintf("Use %s -h to show usage", appName)
	if preCfg.ShowVersion {
		fmt.Println(appName, "version", build.Version(),
			"commit="+build.Commit)
		os.Exit(0)
	}

	// If the config file path has not been modified by the user, then
	// we'll use the default config file path. However, if the user has
	// modified their galaxydir, then we should assume they intend to use
	// the config file within it.
	configFileDir := glxcfg.CleanAndExpandPath(preCfg.GalaxyDir)
	configFilePath := glxcfg.CleanAndExpandPath(preCfg.ConfigFile)
	if configFileDir != DefaultGalaxyDir {
		if configFilePath == DefaultConfigFile {
			configFilePath = filepath.Join(
				configFileDir, glxcfg.DefaultConfigFilename,
			)
		}
	}

	// Next, load any additional configuration options from the file.
	var configFileError error
	cfg := preCfg
	if err := flags.IniParse(configFilePath, &cfg); err != nil {
		// If it's a parsing related error, then we'll return
		// immediately, otherwise we can proceed as possibly the config
		// file doesn't exist which is OK.
		var iniErr *flags.IniError
		if errors.As(err, &iniErr) {
			return nil, err
		}

		configFileError = err
	}

	// Finally, parse the remaining command line options again to ensure
	// they take precedence.
	if _, err := flags.Parse(&cfg); err != nil {
		return nil, err
	}

	// Make sure everything we just loaded makes sense.
	cleanCfg, err := ValidateConfig(cfg, usageMessage, interceptor)
	if err != nil {
		return nil, err
	}

	// Warn about missing config file only after all other configuration is
	// done. This prevents the warning on help messages and invalid
	// options. Note this should go directly before the return.
	if configFileError != nil {
		glxdLog.Warnf("%v", configFileError)
	}

	return cleanCfg, nil
}

// ValidateConfig check the given configuration to be sane. This makes sure no
// illegal values or combination of values are set. All file system paths are
// normalized. The network parameters are built and the requested network is
// selected. The cleaned up config is returned on success.
func ValidateConfig(cfg Config, usageMessage string,
	interceptor signal.Interceptor) (*Config, error) {

	// If the provided galaxyd directory is not the default, we'll modify
	// the path to all of the files and directories that will live within
	// it.
	galaxyDir := glxcfg.CleanAndExpandPath(cfg.GalaxyDir)
	if galaxyDir != DefaultGalaxyDir {
		cfg.DataDir = filepath.Join(galaxyDir, glxcfg.DefaultDataDirname)
		cfg.LogDir = filepath.Join(galaxyDir, glxcfg.DefaultLogDirname)
	}

	funcName := "ValidateConfig"
	makeDirectory := func(dir string) error {
		err := os.MkdirAll(dir, 0700)
		if err != nil {
			// Show a nicer error message if it's because a symlink
			// is linked to a directory that does not exist
			// (probably because it's not mounted).
			var pathErr *os.PathError
			if errors.As(err, &pathErr) && os.IsExist(err) {
				link, lerr := os.Readlink(pathErr.Path)
				if lerr == nil {
					str := "is symlink %s -> %s mounted?"
					err = fmt.Errorf(str, pathErr.Path, link)
				}
			}

			str := "%s: Failed to create galaxyd directory: %v"
			err := fmt.Errorf(str, funcName, err)
			_, _ = fmt.Fprintln(os.Stderr, err)
			return err
		}

		return nil
	}

	// As soon as we're done parsing configuration options, ensure all
	// paths to directories and files are cleaned and expanded before
	// attempting to use them later on.
	cfg.DataDir = glxcfg.CleanAndExpandPath(cfg.DataDir)
	cfg.LogDir = glxcfg.CleanAndExpandPath(cfg.LogDir)

	// A log writer must be passed in, otherwise we can't function and would
	// run into a panic later on.
	if cfg.LogWriter == nil {
		return nil, fmt.Errorf("log writer missing in config")
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		SetupLoggers(cfg.LogWriter, interceptor)
		fmt.Println("Supported subsystems",
			cfg.LogWriter.SupportedSubsystems())
		os.Exit(0)
	}

	// Initialize logging at the default logging level so that building
	// the network parameters can already be reported.
	SetupLoggers(cfg.LogWriter, interceptor)

	// Build and verify the parameters of all networks, then select the
	// requested one. A verification failure means this binary is
	// corrupted and must not run.
	registry, err := netparams.NewRegistry(nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", funcName, err)
	}
	cfg.Registry = registry
	cfg.ActiveNetParams = registry.SelectFromFlag(cfg.TestNet)

	// We'll now construct the network directory which will be where we
	// store all the data specific to this network.
	cfg.networkDir = glxcfg.NetworkDir(cfg.DataDir, cfg.ActiveNetParams)

	// Append the network type to the log directory so it is "namespaced"
	// per network in the same fashion as the data directory.
	cfg.LogDir = glxcfg.NetworkDir(cfg.LogDir, cfg.ActiveNetParams)

	// Create the galaxyd directory and all other sub directories if they
	// don't already exist.
	dirs := []string{galaxyDir, cfg.DataDir, cfg.networkDir, cfg.LogDir}
	for _, dir := range dirs {
		if err := makeDirectory(dir); err != nil {
			return nil, err
		}
	}

	fileLogCfg := &build.FileLoggerConfig{
		Compressor:     cfg.LogCompressor,
		MaxLogFiles:    cfg.MaxLogFiles,
		MaxLogFileSize: cfg.MaxLogFileSize,
	}
	err = cfg.LogWriter.InitLogRotator(
		fileLogCfg, filepath.Join(cfg.LogDir, glxcfg.DefaultLogFilename),
	)
	if err != nil {
		str := "%s: log rotation setup failed: %v"
		err = fmt.Errorf(str, funcName, err)
		_, _ = fmt.Fprintln(os.Stderr, err)
		return nil, err
	}

	// Parse, validate, and set debug log level(s).
	err = build.ParseAndSetDebugLevels(cfg.DebugLevel, cfg.LogWriter)
	if err != nil {
		err = fmt.Errorf("%s: %w", funcName, err)
		_, _ = fmt.Fprintln(os.Stderr, err)
		_, _ = fmt.Fprintln(os.Stderr, usageMessage)
		return nil, err
	}

	// Resolve the operator supplied peers against the selected network's
	// default port.
	defaultPort := strconv.Itoa(int(cfg.ActiveNetParams.DefaultPort()))
	cfg.AddPeers, err = glxcfg.NormalizeAddresses(
		cfg.RawAddPeers, defaultPort, net.ResolveTCPAddr,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", funcName, err)
	}
	for _, addr := range cfg.AddPeers {
		if glxcfg.IsLoopback(addr.String()) {
			glxdLog.Warnf("Peer %v is a loopback address and is "+
				"only reachable from this host", addr)
		}
	}

	return &cfg, nil
}

// NetworkDir returns the directory holding the active network's data.
func (c *Config) NetworkDir() string {
	return c.networkDir
}
