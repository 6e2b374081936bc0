package stabiliser

import (
	"sort"
	"sync"
	"time"
)

const latencyWindow = 1000

// Metrics counts the work done by a pool.
type Metrics struct {
	mu                 sync.RWMutex
	WorkerCount        int
	JobCount           int64
	FailedJobs         int64
	SchedulingFailures int64
	TotalJobTime       time.Duration
	AverageJobLatency  time.Duration
	P95JobLatency      time.Duration

	latencies []time.Duration
}

func newMetrics() *Metrics {
	return &Metrics{
		latencies: make([]time.Duration, 0, latencyWindow),
	}
}

func (m *Metrics) recordJobExecution(startTime time.Time, success bool) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalJobTime += duration
	m.JobCount++

	if !success {
		m.FailedJobs++
	}

	m.AverageJobLatency = m.TotalJobTime / time.Duration(m.JobCount)

	m.latencies = append(m.latencies, duration)
	if len(m.latencies) > latencyWindow {
		m.latencies = m.latencies[1:]
	}

	sorted := append([]time.Duration(nil), m.latencies...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	p95 := int(float64(len(sorted)) * 0.95)
	if p95 >= len(sorted) {
		p95 = len(sorted) - 1
	}

	m.P95JobLatency = sorted[p95]
}

func (m *Metrics) recordSchedulingFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SchedulingFailures++
}

// ExportMetrics returns a snapshot keyed by metric name.
func (m *Metrics) ExportMetrics() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]any{
		"worker_count":        m.WorkerCount,
		"job_count":           m.JobCount,
		"failed_jobs":         m.FailedJobs,
		"scheduling_failures": m.SchedulingFailures,
		"avg_latency":         m.AverageJobLatency,
		"p95_latency":         m.P95JobLatency,
	}
}
