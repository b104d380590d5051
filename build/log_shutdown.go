package build

import (
	"sync"

	"github.com/btcsuite/btclog"
)

// ShutdownLogger wraps a subsystem logger so that a critical message stops
// the daemon. The shutdown function runs at most once, however many
// critical messages follow.
type ShutdownLogger struct {
	btclog.Logger

	shutdown     func()
	shutdownOnce sync.Once
}

// NewShutdownLogger returns a logger that calls shutdown after the first
// message logged at LevelCritical.
func NewShutdownLogger(logger btclog.Logger, shutdown func()) *ShutdownLogger {
	return &ShutdownLogger{
		Logger:   logger,
		shutdown: shutdown,
	}
}

// requestShutdown calls the shutdown function unless it already ran.
func (s *ShutdownLogger) requestShutdown() {
	s.shutdownOnce.Do(func() {
		s.Logger.Info("Critical error, requesting shutdown")
		s.shutdown()
	})
}

// Criticalf logs at LevelCritical and then requests a shutdown.
//
// NOTE: Part of the btclog.Logger interface.
func (s *ShutdownLogger) Criticalf(format string, params ...interface{}) {
	s.Logger.Criticalf(format, params...)
	s.requestShutdown()
}

// Critical logs at LevelCritical and then requests a shutdown.
//
// NOTE: Part of the btclog.Logger interface.
func (s *ShutdownLogger) Critical(v ...interface{}) {
	s.Logger.Critical(v...)
	s.requestShutdown()
}
