package postgres

import (
	"time"

	"github.com/fastygo/journal/domain"
)

// WriteHooks observe every repository write once it committed or failed.
type WriteHooks interface {
	ObserveWrite(op string, started time.Time, err error)
}

type NoopHooks struct{}

func (NoopHooks) ObserveWrite(string, time.Time, error) {}

// WriteRecorder is the subset of the metrics registry the hooks report to.
type WriteRecorder interface {
	ObserveRepositoryWrite(op, status string, dur time.Duration)
}

type metricsHooks struct {
	recorder WriteRecorder
}

func NewMetricsHooks(recorder WriteRecorder) WriteHooks {
	if recorder == nil {
		return NoopHooks{}
	}
	return &metricsHooks{recorder: recorder}
}

func (h *metricsHooks) ObserveWrite(op string, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = string(domain.CodeOf(err))
	}
	h.recorder.ObserveRepositoryWrite(op, status, time.Since(started))
}
