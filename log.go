package galaxyd

import (
	"github.com/btcsuite/btcd/addrmgr"
	"github.com/btcsuite/btclog"
	"github.com/galaxycoin/galaxyd/addrcodec"
	"github.com/galaxycoin/galaxyd/build"
	"github.com/galaxycoin/galaxyd/discovery"
	"github.com/galaxycoin/galaxyd/monitoring"
	"github.com/galaxycoin/galaxyd/netparams"
	"github.com/galaxycoin/galaxyd/signal"
)

// replaceableLogger is a thin wrapper around a logger that is used so the
// logger can be replaced easily without some black pointer magic.
type replaceableLogger struct {
	btclog.Logger
	subsystem string
}

// Loggers can not be used before the log rotator has been initialized with a
// log file. This must be performed early during application startup by
// calling InitLogRotator() on the main log writer instance in the config.
var (
	// glxdPkgLoggers is a list of all galaxyd package level loggers that
	// are registered. They are tracked here so they can be replaced once
	// the SetupLoggers function is called with the final root logger.
	glxdPkgLoggers []*replaceableLogger

	// addGlxdPkgLogger is a helper function that creates a new replaceable
	// main galaxyd package level logger and adds it to the list of loggers
	// that are replaced again later, once the final root logger is ready.
	addGlxdPkgLogger = func(subsystem string) *replaceableLogger {
		l := &replaceableLogger{
			Logger:    build.NewSubLogger(subsystem, nil),
			subsystem: subsystem,
		}
		glxdPkgLoggers = append(glxdPkgLoggers, l)
		return l
	}

	// Loggers that need to be accessible from the galaxyd package can be
	// placed here. Loggers that are only used in sub modules can be added
	// directly by using the addSubLogger method.
	glxdLog = addGlxdPkgLogger("GLXD")
)

// genSubLogger creates a logger for a subsystem. We provide an instance of
// a signal.Interceptor to be able to shutdown in the case of a critical error.
func genSubLogger(root *build.RotatingLogWriter,
	interceptor signal.Interceptor) func(string) btclog.Logger {

	// Create a shutdown function which will request shutdown from our
	// interceptor if it is listening.
	shutdown := func() {
		if !interceptor.Listening() {
			return
		}

		interceptor.RequestShutdown()
	}

	// Return a function which will create a sublogger from our root
	// logger without shutdown fn.
	return func(tag string) btclog.Logger {
		return root.GenSubLogger(tag, shutdown)
	}
}

// SetupLoggers initializes all package-global logger variables.
func SetupLoggers(root *build.RotatingLogWriter, interceptor signal.Interceptor) {
	genLogger := genSubLogger(root, interceptor)

	// Now that we have the proper root logger, we can replace the
	// placeholder galaxyd package loggers.
	for _, l := range glxdPkgLoggers {
		l.Logger = build.NewSubLogger(l.subsystem, genLogger)
		SetSubLogger(root, l.subsystem, l.Logger)
	}

	// Some of the loggers declared in the main galaxyd package are also
	// used in sub packages.
	signal.UseLogger(glxdLog)

	AddSubLogger(root, netparams.Subsystem, interceptor, netparams.UseLogger)
	AddSubLogger(root, addrcodec.Subsystem, interceptor, addrcodec.UseLogger)
	AddSubLogger(root, discovery.Subsystem, interceptor, discovery.UseLogger)
	AddSubLogger(
		root, monitoring.Subsystem, interceptor, monitoring.UseLogger,
	)
	AddSubLogger(root, "AMGR", interceptor, addrmgr.UseLogger)
}

// AddSubLogger is a helper method to conveniently create and register the
// logger of one or more sub systems.
func AddSubLogger(root *build.RotatingLogWriter, subsystem string,
	interceptor signal.Interceptor, useLoggers ...func(btclog.Logger)) {

	// genSubLogger will return a callback for creating a logger instance,
	// which we will give to the root logger.
	genLogger := genSubLogger(root, interceptor)

	// Create and register just a single logger to prevent them from
	// overwriting each other internally.
	logger := build.NewSubLogger(subsystem, genLogger)
	SetSubLogger(root, subsystem, logger, useLoggers...)
}

// SetSubLogger is a helper method to conveniently register the logger of a
// sub system.
func SetSubLogger(root *build.RotatingLogWriter, subsystem string,
	logger btclog.Logger, useLoggers ...func(btclog.Logger)) {

	root.RegisterSubLogger(subsystem, logger)
	for _, useLogger := range useLoggers {
		useLogger(logger)
	}
}
