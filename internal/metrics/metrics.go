package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry metrics
var (
	Reconciliations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scide_reconciliations_total",
		Help: "Total number of contract registry reconciliations",
	})

	TrackedContracts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scide_tracked_contracts",
		Help: "Number of contracts currently in the registry",
	})

	BuiltContracts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scide_built_contracts",
		Help: "Number of registry contracts with a bytecode artifact",
	})
)

// Debugger metrics
var (
	Deployments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scide_deployments_total",
			Help: "Deploy requests sent to the debugger by outcome",
		},
		[]string{"outcome"},
	)

	Runs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scide_runs_total",
			Help: "Function runs sent to the debugger by outcome",
		},
		[]string{"outcome"},
	)

	DebuggerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scide_debugger_request_duration_seconds",
			Help:    "Latency of REST calls to the debugger",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	DebuggerRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scide_debugger_running",
		Help: "1 while the debugger server process is alive",
	})

	Builds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scide_builds_total",
			Help: "Contract builds by outcome",
		},
		[]string{"outcome"},
	)
)

// Bridge metrics
var (
	BridgeMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scide_bridge_messages_total",
			Help: "Messages posted to the rendering surface by tag",
		},
		[]string{"what"},
	)

	BridgeDroppedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scide_bridge_dropped_messages_total",
		Help: "Messages dropped because no surface was open",
	})

	BridgeCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scide_bridge_commands_total",
			Help: "Commands received from the rendering surface",
		},
		[]string{"command"},
	)
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Outcome maps an error to its label value.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
