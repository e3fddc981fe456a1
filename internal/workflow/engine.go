// Package workflow contains the conditional API chain engine: per-iteration
// orchestration of fetch, extraction, alerting and history recording, plus the
// selection of the next endpoint in the chain.
package workflow

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"apichain/internal/extract"
	"apichain/internal/history"
	"apichain/internal/metrics"
	"apichain/internal/source"
	"apichain/pkg/models"
)

// Notifier fans one representative value out to the notification sinks.
// Delivery failures are handled inside the implementation and never surface
// into the engine's control flow.
type Notifier interface {
	Notify(ctx context.Context, value float64)
}

// Engine executes one depth-bounded run of the workflow chain per invocation:
// fetch, extract, alert-check, notify, record, select next, repeat.
type Engine struct {
	source   source.Client
	notifier Notifier
	history  history.Store
	selector *Selector

	alertThreshold float64
	log            zerolog.Logger
	metrics        *metrics.Metrics
}

// NewEngine creates an Engine.
func NewEngine(src source.Client, n Notifier, store history.Store, sel *Selector,
	alertThreshold float64, log zerolog.Logger, m *metrics.Metrics) *Engine {
	return &Engine{
		source:         src,
		notifier:       n,
		history:        store,
		selector:       sel,
		alertThreshold: alertThreshold,
		log:            log,
		metrics:        m,
	}
}

// Run executes one full run starting from seed. Every completed fetch, whether
// it succeeded or failed, appends exactly one history record. A failed fetch
// terminates the run without consulting the selector; otherwise the run ends
// when the selector declines to pick a next endpoint.
func (e *Engine) Run(ctx context.Context, seed string) {
	runID := uuid.New().String()
	log := e.log.With().Str("run_id", runID).Logger()
	log.Info().Str("seed", seed).Msg("workflow run starting")

	endpoint := seed
	for depth := 0; ; depth++ {
		select {
		case <-ctx.Done():
			log.Info().Int("depth", depth).Msg("workflow run cancelled")
			return
		default:
		}

		next, ok := e.iterate(ctx, log, runID, endpoint, depth)
		if !ok {
			break
		}
		endpoint = next
	}

	e.metrics.AddRun(ctx)
	log.Info().Msg("workflow run finished")
}

// iterate performs one fetch-to-record cycle and returns the next endpoint, or
// ok=false when the run is over.
func (e *Engine) iterate(ctx context.Context, log zerolog.Logger, runID, endpoint string, depth int) (string, bool) {
	rec := models.Record{
		ID:        uuid.New().String(),
		RunID:     runID,
		Timestamp: time.Now(),
		Endpoint:  endpoint,
		Depth:     depth,
		Status:    models.StatusOK,
	}

	data, err := e.source.Fetch(ctx, endpoint)
	if err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Int("depth", depth).
			Msg("data source fetch failed")
		rec.Status = models.StatusAPIError
		e.append(ctx, rec)
		return "", false
	}

	samples := extract.Numbers(data)
	if len(samples) > 0 {
		value := samples[0]
		rec.Value = models.FloatOf(value)
		rec.Max = models.FloatOf(maxOf(samples))
		rec.Min = models.FloatOf(minOf(samples))
		rec.Avg = models.FloatOf(round2(mean(samples)))

		e.notifier.Notify(ctx, value)

		if value >= e.alertThreshold {
			rec.Status = models.StatusAlert
			log.Warn().Float64("value", value).Str("endpoint", endpoint).
				Msg("critical value detected")
		}
	}

	e.append(ctx, rec)

	next, ok := e.selector.Next(samples, depth+1)
	if !ok {
		return "", false
	}
	log.Info().Str("next", next).Int("depth", depth+1).Msg("next endpoint selected")
	return next, true
}

func (e *Engine) append(ctx context.Context, rec models.Record) {
	e.history.Append(rec)
	e.metrics.AddRecord(ctx, rec.Status)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func maxOf(samples []float64) float64 {
	m := samples[0]
	for _, v := range samples[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(samples []float64) float64 {
	m := samples[0]
	for _, v := range samples[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
