package telemetry

import (
	"context"
	"time"

	"github.com/l0he1g/BaYeAgent/internal/rerank"
)

type timedOracle struct {
	inner   rerank.Oracle
	metrics *Metrics
}

// TimedOracle wraps a scoring oracle so every call feeds the latency
// histogram, including failed calls.
func (m *Metrics) TimedOracle(o rerank.Oracle) rerank.Oracle {
	return &timedOracle{inner: o, metrics: m}
}

func (t *timedOracle) Score(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := t.inner.Score(ctx, prompt)
	t.metrics.OracleLatency.Observe(time.Since(start).Seconds())
	return out, err
}
