package core

import (
	"net/http"
	"time"
)

// Health reports whether the scheduler is still ticking.
type Health struct {
	tracker  *tracker
	interval time.Duration
	now      func() time.Time
}

// IsHealthy is true while the last cycle started less than two intervals before now.
func (h *Health) IsHealthy(now time.Time) bool {
	last := time.Unix(0, h.tracker.lastRunAt.Load())
	return now.Sub(last) < 2*h.interval
}

func (h *Health) StatusCode() int {
	if h.IsHealthy(h.now()) {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}
