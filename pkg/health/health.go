// Package health checks that a simulation run is making progress and
// that its state log export is keeping up.
package health

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sony/gobreaker"
)

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health of a run.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Healthy reports whether every check passed
func (s HealthStatus) Healthy() bool {
	return s.Status == "healthy"
}

// Failing returns the names of the failed checks, sorted
func (s HealthStatus) Failing() []string {
	var names []string
	for name, c := range s.Checks {
		if c.Status != "healthy" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a health check, replacing any with the same name.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth executes all registered health checks. The overall status
// is "healthy" only if all individual checks pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth),
	}
	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		} else {
			status.Checks[name] = ComponentHealth{
				Status: "healthy",
			}
		}
	}
	return status
}

// ProgressCheck fails when the tick counter has not moved since the
// previous check.
type ProgressCheck struct {
	tick func() uint64

	mu      sync.Mutex
	last    uint64
	checked bool
}

// NewProgressCheck creates a stall check over a tick counter
func NewProgressCheck(tick func() uint64) *ProgressCheck {
	return &ProgressCheck{tick: tick}
}

// Name returns the name of this health check.
func (p *ProgressCheck) Name() string {
	return "progress"
}

// Check compares the tick counter with the previous call
func (p *ProgressCheck) Check(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.tick()
	stalled := p.checked && now == p.last
	p.last, p.checked = now, true
	if stalled {
		return fmt.Errorf("simulation stalled at tick %d", now)
	}
	return nil
}

// SinkCheck fails while the state log sink's circuit breaker is open.
type SinkCheck struct {
	state func() gobreaker.State
}

// NewSinkCheck creates a check over a breaker state
func NewSinkCheck(state func() gobreaker.State) *SinkCheck {
	return &SinkCheck{state: state}
}

// Name returns the name of this health check.
func (s *SinkCheck) Name() string {
	return "log_sink"
}

// Check fails on an open breaker. Half-open counts as healthy: the sink
// is being probed.
func (s *SinkCheck) Check(ctx context.Context) error {
	if state := s.state(); state == gobreaker.StateOpen {
		return fmt.Errorf("state log sink breaker is %s", state)
	}
	return nil
}

// BacklogCheck fails when more state log entries are buffered than the
// limit, which happens while exports keep failing.
type BacklogCheck struct {
	maxEntries int
	buffered   func() int
}

// NewBacklogCheck creates a check over the buffered entry count
func NewBacklogCheck(maxEntries int, buffered func() int) *BacklogCheck {
	return &BacklogCheck{maxEntries: maxEntries, buffered: buffered}
}

// Name returns the name of this health check.
func (b *BacklogCheck) Name() string {
	return "log_backlog"
}

// Check verifies the backlog is within the limit.
func (b *BacklogCheck) Check(ctx context.Context) error {
	if n := b.buffered(); n > b.maxEntries {
		return fmt.Errorf("%d state log entries buffered, limit %d", n, b.maxEntries)
	}
	return nil
}

// MemoryHealthCheck implements HealthCheck for memory usage monitoring.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a health check for memory usage.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

// Name returns the name of this health check.
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within acceptable limits.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}
