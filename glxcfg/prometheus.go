package glxcfg

// Prometheus configures the Prometheus exporter.
//
//nolint:lll
type Prometheus struct {
	// Listen is the address the exporter serves /metrics on. The exporter
	// is disabled when it is empty.
	Listen string `long:"listen" description:"the interface we should listen on for Prometheus"`
}

// DefaultPrometheus is the default configuration for the Prometheus metrics
// exporter.
func DefaultPrometheus() Prometheus {
	return Prometheus{}
}

// Enabled returns whether or not Prometheus monitoring is enabled.
func (p *Prometheus) Enabled() bool {
	return p.Listen != ""
}
