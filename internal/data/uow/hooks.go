package uow

import (
	"strings"
	"time"

	"github.com/voltstack/commerce-backend/internal/observability"
)

// Hooks captures write-path observability events. The domain itself stays
// metrics-free; hooks default to no-ops.
type Hooks interface {
	ObserveOperation(op, status string, dur time.Duration)
	IncConflict(op string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                             {}

// NoopHooks returns hooks that drop every event.
func NoopHooks() Hooks { return noopHooks{} }

type metricsHooks struct {
	metrics *observability.Metrics
}

// NewMetricsHooks creates hooks backed by prometheus metrics.
func NewMetricsHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return &metricsHooks{metrics: metrics}
}

func (h *metricsHooks) ObserveOperation(op, status string, dur time.Duration) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.ObserveCommand(strings.TrimSpace(op), strings.TrimSpace(status), dur)
}

func (h *metricsHooks) IncConflict(op string) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.IncConflict(strings.TrimSpace(op))
}
