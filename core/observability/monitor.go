// Package observability provides lightweight request counters for the
// engine — per-route hit counts and total latency,
// queryable without locking the hot path.
package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// RouteMetrics holds atomic counters for one route.
type RouteMetrics struct {
	Name          string
	Count         atomic.Uint64
	Errors        atomic.Uint64
	TotalDuration atomic.Uint64
}

// Monitor aggregates per-route metrics across every worker thread's
// connections. All fields are safe for concurrent use without
// additional locking.
type Monitor struct {
	enabled atomic.Bool
	routes  sync.Map // string -> *RouteMetrics
}

// NewMonitor creates an enabled Monitor.
func NewMonitor() *Monitor {
	m := &Monitor{}
	m.enabled.Store(true)
	return m
}

// StartTrace returns a start timestamp for a request, or 0 if disabled.
func (m *Monitor) StartTrace() int64 {
	if !m.enabled.Load() {
		return 0
	}
	return time.Now().UnixNano()
}

// EndTrace records the duration since start against route.
func (m *Monitor) EndTrace(route string, start int64, isError bool) {
	if start == 0 {
		return
	}
	m.RecordRequest(route, time.Duration(time.Now().UnixNano()-start), isError)
}

// RecordRequest records one completed request against route.
func (m *Monitor) RecordRequest(route string, duration time.Duration, isError bool) {
	if !m.enabled.Load() {
		return
	}
	val, _ := m.routes.LoadOrStore(route, &RouteMetrics{Name: route})
	rm := val.(*RouteMetrics)
	rm.Count.Add(1)
	if isError {
		rm.Errors.Add(1)
	}
	rm.TotalDuration.Add(uint64(duration.Nanoseconds()))
}

// Snapshot returns a copy of every route's current counters.
func (m *Monitor) Snapshot() []RouteMetrics {
	var out []RouteMetrics
	m.routes.Range(func(_, value any) bool {
		rm := value.(*RouteMetrics)
		out = append(out, RouteMetrics{
			Name: rm.Name,
		})
		last := &out[len(out)-1]
		last.Count.Store(rm.Count.Load())
		last.Errors.Store(rm.Errors.Load())
		last.TotalDuration.Store(rm.TotalDuration.Load())
		return true
	})
	return out
}
