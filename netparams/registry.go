package netparams

import (
	"fmt"
	"sync/atomic"
)

// Registry holds the parameters of every supported network together with the
// one that is currently active. A Registry is built once during startup and
// then handed to every subsystem that needs network parameters.
//
// NOTE: Select is expected to be called at most once, from the same
// initialization path that parses the configuration, before any consumer
// reads Current. Running as two networks at once is not supported.
type Registry struct {
	mainNet *Params
	testNet *Params

	active atomic.Pointer[Params]
}

// NewRegistry builds and verifies the parameters of all networks. The main
// network is built first as the test network is derived from it. The
// returned registry has the main network selected.
//
// An error matching ErrInvariantViolation means the compiled-in genesis
// recipe does not reproduce the network's agreed upon chain root and the
// process must not continue.
func NewRegistry(cfg *Config) (*Registry, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	mainNet, err := newParams(mainNetRecipe, &mainNetOverrides, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to build %v parameters: %w",
			MainNet, err)
	}

	testNet, err := newParams(mainNetRecipe, &testNetOverrides, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to build %v parameters: %w",
			TestNet, err)
	}

	r := &Registry{
		mainNet: mainNet,
		testNet: testNet,
	}
	r.active.Store(mainNet)

	return r, nil
}

// Params returns the parameters of the given network without changing the
// active selection.
func (r *Registry) Params(net NetworkID) (*Params, error) {
	switch net {
	case MainNet:
		return r.mainNet, nil

	case TestNet:
		return r.testNet, nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownNetwork, net)
	}
}

// Select makes the given network the active one and returns its
// parameters. An error matching ErrUnknownNetwork is a programming error
// in the caller.
func (r *Registry) Select(net NetworkID) (*Params, error) {
	params, err := r.Params(net)
	if err != nil {
		return nil, err
	}

	r.active.Store(params)
	log.Infof("Active network: %v", params.Name())

	return params, nil
}

// SelectFromFlag selects the test network if testNet is set and the main
// network otherwise.
func (r *Registry) SelectFromFlag(testNet bool) *Params {
	net := MainNet
	if testNet {
		net = TestNet
	}

	// Both networks are always present, so this cannot fail.
	params, _ := r.Select(net)

	return params
}

// Current returns the parameters of the active network.
func (r *Registry) Current() *Params {
	return r.active.Load()
}
