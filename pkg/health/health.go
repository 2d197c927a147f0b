// Package health aggregates named readiness probes behind HTTP handlers.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
)

// Probe checks one dependency and returns an error when it is unavailable.
type Probe func(ctx context.Context) error

// Checker runs registered probes on demand.
type Checker struct {
	mu     sync.RWMutex
	probes map[string]Probe
}

func NewChecker() *Checker {
	return &Checker{probes: make(map[string]Probe)}
}

// Register adds or replaces the probe with the given name.
func (c *Checker) Register(name string, probe Probe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probes[name] = probe
}

// Report is the JSON body served by the readiness handler.
type Report struct {
	Ready  bool              `json:"ready"`
	Probes map[string]string `json:"probes,omitempty"`
}

// Check runs every probe and aggregates the results.
func (c *Checker) Check(ctx context.Context) Report {
	c.mu.RLock()
	defer c.mu.RUnlock()

	report := Report{Ready: true, Probes: make(map[string]string, len(c.probes))}
	for name, probe := range c.probes {
		if err := probe(ctx); err != nil {
			report.Ready = false
			report.Probes[name] = err.Error()
			continue
		}
		report.Probes[name] = "ok"
	}
	return report
}

// LivenessHandler reports that the process is up, nothing more.
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
	}
}

// ReadinessHandler runs all probes and returns 503 when any fails.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := c.Check(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if report.Ready {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(report)
	}
}
