package monitoring

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/galaxycoin/galaxyd/glxcfg"
	"github.com/galaxycoin/galaxyd/netparams"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// namespace prefixes every metric exported by galaxyd.
	namespace = "galaxyd"

	// shutdownTimeout bounds how long Stop waits for in-flight scrapes.
	shutdownTimeout = 5 * time.Second
)

// Exporter publishes the parameters of the active network as Prometheus
// gauges and serves them over HTTP.
type Exporter struct {
	cfg glxcfg.Prometheus

	registry *prometheus.Registry

	networkInfo      *prometheus.GaugeVec
	fixedSeeds       prometheus.Gauge
	lastPoWBlock     prometheus.Gauge
	genesisTimestamp prometheus.Gauge

	started sync.Once
	stopped sync.Once

	listener net.Listener
	server   *http.Server
}

// NewExporter creates an exporter describing the given network. The metrics
// are registered on a private registry so that separate exporters never
// collide.
func NewExporter(cfg glxcfg.Prometheus,
	params *netparams.Params) (*Exporter, error) {

	e := &Exporter{
		cfg:      cfg,
		registry: prometheus.NewRegistry(),
		networkInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "network_info",
			Help:      "Active network, always 1.",
		}, []string{"network", "magic"}),
		fixedSeeds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fixed_seeds",
			Help:      "Number of compiled-in bootstrap peers.",
		}),
		lastPoWBlock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_pow_block",
			Help:      "Last block height produced by proof of work.",
		}),
		genesisTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "genesis_timestamp_seconds",
			Help:      "Creation time of the genesis block.",
		}),
	}

	err := registerAll(
		e.registry,
		e.networkInfo,
		e.fixedSeeds,
		e.lastPoWBlock,
		e.genesisTimestamp,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(
			collectors.ProcessCollectorOpts{},
		),
	)
	if err != nil {
		return nil, err
	}

	magic := params.ProtocolMagic()
	e.networkInfo.WithLabelValues(
		params.Name(), fmt.Sprintf("%x", magic[:]),
	).Set(1)
	e.fixedSeeds.Set(float64(len(params.FixedSeeds())))
	e.lastPoWBlock.Set(float64(params.LastPoWBlock()))
	e.genesisTimestamp.Set(float64(
		params.GenesisBlock().Header.Timestamp.Unix(),
	))

	return e, nil
}

func registerAll(registry *prometheus.Registry,
	cs ...prometheus.Collector) error {

	for _, c := range cs {
		if err := registry.Register(c); err != nil {
			return fmt.Errorf("unable to register collector: %w", err)
		}
	}

	return nil
}

// Registry returns the registry the exporter's metrics live on.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Start begins serving /metrics on the configured address. It is a no-op if
// the exporter is disabled in the config or already started.
func (e *Exporter) Start() error {
	if !e.cfg.Enabled() {
		return nil
	}

	var err error
	e.started.Do(func() {
		e.listener, err = net.Listen("tcp", e.cfg.Listen)
		if err != nil {
			err = fmt.Errorf("unable to listen on %v: %w",
				e.cfg.Listen, err)
			return
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(
			e.registry, promhttp.HandlerOpts{},
		))
		e.server = &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		log.Infof("Prometheus exporter started on %v/metrics",
			e.listener.Addr())

		go func() {
			err := e.server.Serve(e.listener)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("Prometheus exporter failed: %v", err)
			}
		}()
	})

	return err
}

// Addr returns the address the exporter listens on, or nil if it is not
// running.
func (e *Exporter) Addr() net.Addr {
	if e.listener == nil {
		return nil
	}

	return e.listener.Addr()
}

// Stop shuts the HTTP server down.
func (e *Exporter) Stop() error {
	if e.server == nil {
		return nil
	}

	var err error
	e.stopped.Do(func() {
		ctx, cancel := context.WithTimeout(
			context.Background(), shutdownTimeout,
		)
		defer cancel()

		log.Info("Prometheus exporter shutting down...")
		err = e.server.Shutdown(ctx)
	})

	return err
}
