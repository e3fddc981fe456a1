// Package notify fans a representative value out to the configured
// notification sinks: email, Slack and Google Sheets.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"apichain/internal/metrics"
)

// Sink delivers one value to one external destination. Implementations make at
// most one delivery attempt per call; retries are deliberately out of scope.
type Sink interface {
	// Name identifies the sink in logs and metrics.
	Name() string
	// Notify delivers value to the sink's destination.
	Notify(ctx context.Context, value float64) error
}

// Fanout invokes every sink in turn. A failing sink is logged and counted but
// never prevents the remaining sinks from being invoked, and no failure ever
// propagates to the caller.
type Fanout struct {
	sinks   []Sink
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewFanout creates a Fanout over the given sinks.
func NewFanout(log zerolog.Logger, m *metrics.Metrics, sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks, log: log, metrics: m}
}

// Notify delivers value to every sink, isolating failures per sink.
func (f *Fanout) Notify(ctx context.Context, value float64) {
	for _, s := range f.sinks {
		if err := s.Notify(ctx, value); err != nil {
			f.log.Error().Err(err).Str("sink", s.Name()).Float64("value", value).
				Msg("notification failed")
			f.metrics.AddNotifyFailure(ctx, s.Name())
			continue
		}
		f.log.Info().Str("sink", s.Name()).Float64("value", value).
			Msg("notification sent")
	}
}
