// Package metric provides Prometheus metrics for resp-cli.
//
// The CLI has no HTTP surface, so metrics are exported by writing the
// registry to a textfile for node_exporter's textfile collector.
package metric

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Error kinds recorded in ErrorsTotal.
const (
	ErrorTokenize  = "tokenize"
	ErrorTransport = "transport"
	ErrorDesync    = "desync"
)

// maxCommandLabelLen bounds the command label; longer or non-alphabetic
// names are recorded as OTHER.
const maxCommandLabelLen = 32

// Registry holds the session metrics.
type Registry struct {
	registry *prometheus.Registry

	CommandsTotal   *prometheus.CounterVec
	RepliesTotal    *prometheus.CounterVec
	ErrorsTotal     *prometheus.CounterVec
	CommandDuration prometheus.Histogram
}

// NewRegistry creates a registry with all metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "respcli",
			Name:      "commands_total",
			Help:      "Commands sent to the server by command name",
		}, []string{"command"}),
		RepliesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "respcli",
			Name:      "replies_total",
			Help:      "Replies received by reply type",
		}, []string{"type"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "respcli",
			Name:      "errors_total",
			Help:      "Failed REPL turns by error kind",
		}, []string{"kind"}),
		CommandDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "respcli",
			Name:      "command_duration_seconds",
			Help:      "Round-trip time of one command",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}

	r.registry.MustRegister(
		r.CommandsTotal,
		r.RepliesTotal,
		r.ErrorsTotal,
		r.CommandDuration,
	)
	return r
}

// ObserveCommand records one sent command and its round-trip time.
func (r *Registry) ObserveCommand(name string, elapsed time.Duration) {
	r.CommandsTotal.WithLabelValues(CommandLabel(name)).Inc()
	r.CommandDuration.Observe(elapsed.Seconds())
}

// ObserveReply records one received reply of the given type.
func (r *Registry) ObserveReply(replyType string) {
	r.RepliesTotal.WithLabelValues(replyType).Inc()
}

// ObserveError records one failed turn.
func (r *Registry) ObserveError(kind string) {
	r.ErrorsTotal.WithLabelValues(kind).Inc()
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// CommandLabel normalizes a command name for use as a label value.
func CommandLabel(name string) string {
	if name == "" || len(name) > maxCommandLabelLen {
		return "OTHER"
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' || c == '-') {
			return "OTHER"
		}
	}
	return strings.ToUpper(name)
}
