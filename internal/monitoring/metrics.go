package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds process-wide counters for the HTTP and pricing paths.
type Metrics struct {
	RequestCount   int64
	ErrorCount     int64
	RunCount       int64
	RowsPriced     int64
	RequestsByPath sync.Map // path -> *int64
	StatusCounts   sync.Map // status code -> *int64

	mu            sync.Mutex
	responseTimes []time.Duration
	startTime     time.Time
}

const maxResponseSamples = 1000

func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

func (m *Metrics) RecordRequest(path string, statusCode int, duration time.Duration) {
	atomic.AddInt64(&m.RequestCount, 1)
	if statusCode >= 400 {
		atomic.AddInt64(&m.ErrorCount, 1)
	}

	incr(&m.RequestsByPath, path)
	incr(&m.StatusCounts, statusCode)

	m.mu.Lock()
	m.responseTimes = append(m.responseTimes, duration)
	if len(m.responseTimes) > maxResponseSamples {
		m.responseTimes = m.responseTimes[len(m.responseTimes)-maxResponseSamples:]
	}
	m.mu.Unlock()
}

func (m *Metrics) RecordRun(rowCount int) {
	atomic.AddInt64(&m.RunCount, 1)
	atomic.AddInt64(&m.RowsPriced, int64(rowCount))
}

func incr(sm *sync.Map, key any) {
	v, _ := sm.LoadOrStore(key, new(int64))
	atomic.AddInt64(v.(*int64), 1)
}

// GetStats returns a snapshot of all counters for the health endpoint.
func (m *Metrics) GetStats() map[string]any {
	stats := map[string]any{
		"request_count": atomic.LoadInt64(&m.RequestCount),
		"error_count":   atomic.LoadInt64(&m.ErrorCount),
		"run_count":     atomic.LoadInt64(&m.RunCount),
		"rows_priced":   atomic.LoadInt64(&m.RowsPriced),
		"uptime":        time.Since(m.startTime).String(),
	}

	byPath := make(map[string]int64)
	m.RequestsByPath.Range(func(k, v any) bool {
		byPath[k.(string)] = atomic.LoadInt64(v.(*int64))
		return true
	})
	stats["requests_by_path"] = byPath

	byStatus := make(map[int]int64)
	m.StatusCounts.Range(func(k, v any) bool {
		byStatus[k.(int)] = atomic.LoadInt64(v.(*int64))
		return true
	})
	stats["status_counts"] = byStatus

	m.mu.Lock()
	if n := len(m.responseTimes); n > 0 {
		var total time.Duration
		for _, d := range m.responseTimes {
			total += d
		}
		stats["avg_response_time"] = (total / time.Duration(n)).String()
	}
	m.mu.Unlock()

	return stats
}

func (m *Metrics) Reset() {
	atomic.StoreInt64(&m.RequestCount, 0)
	atomic.StoreInt64(&m.ErrorCount, 0)
	atomic.StoreInt64(&m.RunCount, 0)
	atomic.StoreInt64(&m.RowsPriced, 0)
	m.RequestsByPath = sync.Map{}
	m.StatusCounts = sync.Map{}
	m.mu.Lock()
	m.responseTimes = nil
	m.startTime = time.Now()
	m.mu.Unlock()
}
