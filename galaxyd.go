package galaxyd

import (
	"fmt"
	"net"

	"github.com/btcsuite/btcd/addrmgr"
	"github.com/galaxycoin/galaxyd/addrcodec"
	"github.com/galaxycoin/galaxyd/build"
	"github.com/galaxycoin/galaxyd/discovery"
	"github.com/galaxycoin/galaxyd/glxutils"
	"github.com/galaxycoin/galaxyd/monitoring"
	"github.com/galaxycoin/galaxyd/netparams"
)

// Main is the true entry point for galaxyd. It must be called with a config
// returned by LoadConfig or ValidateConfig. The function returns once the
// shutdown channel is closed, or with an error if startup fails.
func Main(cfg *Config, shutdownChan <-chan struct{}) error {
	defer func() {
		glxdLog.Info("Shutdown complete")
		if err := cfg.LogWriter.Close(); err != nil {
			fmt.Printf("Could not close log rotator: %v\n", err)
		}
	}()

	// Show version at startup.
	glxdLog.Infof("Version: %s commit=%s, build=%s, debuglevel=%s",
		build.Version(), build.Commit, build.Deployment,
		cfg.DebugLevel)
	if build.IsDevBuild() {
		glxdLog.Warn("Running a development build, not suitable for " +
			"use on a live network")
	}

	params := cfg.ActiveNetParams
	if params == nil {
		return fmt.Errorf("no active network in config")
	}

	glxdLog.Infof("Active network is %v", params)
	glxdLog.Debugf("%v", glxutils.NewLogClosure(func() string {
		return describeParams(params)
	}))

	codec, err := addrcodec.New(params)
	if err != nil {
		return fmt.Errorf("unable to create address codec: %w", err)
	}

	genesis := params.GenesisBlock()
	genesisAddrs, err := codec.ScriptAddresses(
		genesis.Transactions[0].TxOut[0].PkScript,
	)
	if err != nil {
		return fmt.Errorf("unable to decode genesis output: %w", err)
	}
	glxdLog.Infof("Genesis block %v pays to %v", params.GenesisHash(),
		genesisAddrs)

	// Load the persisted address book of this network and make sure it
	// knows the fixed seeds if it is empty.
	book := addrmgr.New(cfg.networkDir, net.LookupIP)
	book.Start()
	defer func() {
		if err := book.Stop(); err != nil {
			glxdLog.Errorf("Unable to stop address book: %v", err)
		}
	}()
	discovery.SeedAddressBook(book, params)

	fixedSeeds, err := discovery.NewFixedSeedBootstrapper(params)
	if err != nil {
		return fmt.Errorf("unable to create seed bootstrapper: %w", err)
	}

	candidates, err := discovery.MultiSourceBootstrap(
		nil, cfg.BootstrapPeers,
		discovery.NewStaticBootstrapper(cfg.AddPeers),
		discovery.NewAddrBookBootstrapper(book),
		fixedSeeds,
	)
	if err != nil {
		return fmt.Errorf("unable to gather bootstrap peers: %w", err)
	}
	for _, addr := range candidates {
		glxdLog.Debugf("Bootstrap candidate %v", discovery.AddrKey(addr))
	}

	exporter, err := monitoring.NewExporter(cfg.Prometheus, params)
	if err != nil {
		return fmt.Errorf("unable to create prometheus exporter: %w",
			err)
	}
	if err := exporter.Start(); err != nil {
		return err
	}
	defer func() {
		if err := exporter.Stop(); err != nil {
			glxdLog.Errorf("Unable to stop prometheus exporter: %v",
				err)
		}
	}()

	glxdLog.Info("Network parameters ready, waiting for shutdown signal")

	<-shutdownChan

	return nil
}

// describeParams renders a one line summary of a network's parameters.
func describeParams(p *netparams.Params) string {
	magic := p.ProtocolMagic()

	return fmt.Sprintf("network=%v magic=%x port=%d rpcport=%d "+
		"bits=%08x lastpow=%d seeds=%d pubkey=%x script=%x secret=%x",
		p, magic[:], p.DefaultPort(), p.RPCPort(), p.PowLimitBits(),
		p.LastPoWBlock(), len(p.FixedSeeds()),
		p.Prefix(netparams.PubKeyAddress),
		p.Prefix(netparams.ScriptAddress),
		p.Prefix(netparams.SecretKey))
}
