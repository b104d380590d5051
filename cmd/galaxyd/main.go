package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/galaxycoin/galaxyd"
	"github.com/galaxycoin/galaxyd/netparams"
	"github.com/galaxycoin/galaxyd/signal"
	"github.com/jessevdk/go-flags"
)

func main() {
	// Hook interceptor for os signals.
	shutdownInterceptor, err := signal.Intercept()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Load the configuration, and parse any command line options. This
	// function will also set up logging properly and verify the network
	// parameters.
	loadedConfig, err := galaxyd.LoadConfig(shutdownInterceptor)
	if err != nil {
		var flagErr *flags.Error
		isHelp := errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp
		if !isHelp {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}

		// A binary whose genesis does not verify must never run.
		if errors.Is(err, netparams.ErrInvariantViolation) {
			_, _ = fmt.Fprintln(os.Stderr, "galaxyd: network "+
				"parameters are corrupt, refusing to start")
		}
		os.Exit(1)
	}

	// Call the "real" main in a nested manner so the defers will properly
	// be executed in the case of a graceful shutdown.
	err = galaxyd.Main(loadedConfig, shutdownInterceptor.ShutdownChannel())
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
