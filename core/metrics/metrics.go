// Package metrics exposes the Prometheus series reported by the bot.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ipbot"

var (
	registry = prometheus.NewRegistry()

	updatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tg",
		Name:      "updates_total",
		Help:      "Telegram updates handled, by kind.",
	}, []string{"kind"})

	messagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tg",
		Name:      "messages_sent_total",
		Help:      "Outbound Telegram messages delivered.",
	})

	authDenied = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Events rejected because they came from an unauthorized chat.",
	})

	registryEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "registry",
		Name:      "entries",
		Help:      "Current number of registered IP addresses.",
	})

	registryMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "registry",
		Name:      "mutations_total",
		Help:      "Registry add/remove calls, by operation and result.",
	}, []string{"op", "result"})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route and status code.",
	}, []string{"path", "code"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		updatesTotal,
		messagesSent,
		authDenied,
		registryEntries,
		registryMutations,
		httpRequests,
	)
}

// Registry returns the gatherer holding every ipbot series.
func Registry() *prometheus.Registry { return registry }

// Handler serves the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// IncUpdate counts one handled update of the given kind ("message", "callback", ...).
func IncUpdate(kind string) {
	if kind == "" {
		kind = "other"
	}
	updatesTotal.WithLabelValues(kind).Inc()
}

// IncMessageSent counts one delivered outbound message.
func IncMessageSent() { messagesSent.Inc() }

// IncAuthDenied counts one rejected event.
func IncAuthDenied() { authDenied.Inc() }

// SetRegistryEntries reports the registry size.
func SetRegistryEntries(n int) { registryEntries.Set(float64(n)) }

// ObserveMutation records a registry mutation. result is one of "added",
// "removed", "noop" or "persist_fail".
func ObserveMutation(op, result string) {
	registryMutations.WithLabelValues(op, result).Inc()
}

// ObserveHTTP records one served request.
func ObserveHTTP(path string, code int) {
	httpRequests.WithLabelValues(path, strconv.Itoa(code)).Inc()
}
