// Package metrics exposes Prometheus counters for scoreboard activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	// ScoreIncrements counts accepted increments, labeled by player mark.
	ScoreIncrements *prometheus.CounterVec

	// InvalidPlayers counts increment requests naming neither X nor O.
	InvalidPlayers prometheus.Counter

	ScoreResets prometheus.Counter
	ScoreViews  prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers the scoreboard collectors on registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		ScoreIncrements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scoreboard_score_increments_total",
			Help: "Total number of accepted score increments",
		}, []string{"player"}),
		InvalidPlayers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scoreboard_invalid_player_total",
			Help: "Total number of increment requests with an unknown player",
		}),
		ScoreResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scoreboard_score_resets_total",
			Help: "Total number of score resets",
		}),
		ScoreViews: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scoreboard_score_views_total",
			Help: "Total number of scoreboard page views",
		}),
		gatherer: registry,
	}

	registry.MustRegister(
		m.ScoreIncrements,
		m.InvalidPlayers,
		m.ScoreResets,
		m.ScoreViews,
	)

	return m
}

// Handler returns the Prometheus metrics HTTP handler.
func (that *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(that.gatherer, promhttp.HandlerOpts{})
}
