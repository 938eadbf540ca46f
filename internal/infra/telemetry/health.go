package telemetry

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

const defaultFailureThreshold = 3

// HealthReport is the /healthz payload.
type HealthReport struct {
	Status   string         `json:"status"`
	Upstream UpstreamHealth `json:"upstream"`
}

// UpstreamHealth summarizes the most recent upstream outcomes.
type UpstreamHealth struct {
	LastSuccess         *time.Time `json:"lastSuccess,omitempty"`
	LastFailure         *time.Time `json:"lastFailure,omitempty"`
	LastError           string     `json:"lastError,omitempty"`
	ConsecutiveFailures int        `json:"consecutiveFailures"`
}

// HealthTracker derives adapter health from upstream reachability.
// Client errors (4xx) count as reachable; transport failures and 5xx do not.
type HealthTracker struct {
	mu        sync.Mutex
	now       func() time.Time
	threshold int
	state     UpstreamHealth
}

func NewHealthTracker() *HealthTracker {
	return &HealthTracker{
		now:       time.Now,
		threshold: defaultFailureThreshold,
	}
}

func (h *HealthTracker) ObserveUpstream(status int, err error) {
	if h == nil {
		return
	}
	now := h.now()

	h.mu.Lock()
	defer h.mu.Unlock()

	if status == 0 || status >= http.StatusInternalServerError {
		h.state.ConsecutiveFailures++
		h.state.LastFailure = &now
		if err != nil {
			h.state.LastError = err.Error()
		} else {
			h.state.LastError = http.StatusText(status)
		}
		return
	}
	h.state.ConsecutiveFailures = 0
	h.state.LastSuccess = &now
}

func (h *HealthTracker) Report() HealthReport {
	if h == nil {
		return HealthReport{Status: "ok"}
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	status := "ok"
	if h.state.ConsecutiveFailures >= h.threshold {
		status = "degraded"
	}
	return HealthReport{
		Status:   status,
		Upstream: h.state,
	}
}

// ServeHTTP writes the report as JSON. A degraded upstream answers 503.
func (h *HealthTracker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	report := h.Report()
	status := http.StatusOK
	if report.Status != "ok" {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(report)
}
