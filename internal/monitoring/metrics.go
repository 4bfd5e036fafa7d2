package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds application metrics
type Metrics struct {
	RequestCount        int64
	ErrorCount          int64
	CacheHits           int64
	CacheMisses         int64
	AssessmentCount     int64
	GeminiAPICalls      int64
	AverageResponseTime int64 // in nanoseconds
	StartTime           time.Time

	// Decision outcome tracking
	DecisionCounts map[string]int64
	decisionMutex  sync.RWMutex

	// Status code tracking
	RequestCountByStatus map[int]int64
	statusMutex          sync.RWMutex

	// Rate limit metrics
	RateLimitIPBlocks      int64
	RateLimitRedisErrors   int64
	RateLimitFallbackCount int64
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:            time.Now(),
		DecisionCounts:       make(map[string]int64),
		RequestCountByStatus: make(map[int]int64),
	}
}

// IncrementRequest increments the request count
func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

// IncrementError increments the error count
func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// IncrementCacheHit increments cache hit count
func (m *Metrics) IncrementCacheHit() {
	atomic.AddInt64(&m.CacheHits, 1)
}

// IncrementCacheMiss increments cache miss count
func (m *Metrics) IncrementCacheMiss() {
	atomic.AddInt64(&m.CacheMisses, 1)
}

// IncrementGeminiCalls increments Gemini API call count
func (m *Metrics) IncrementGeminiCalls() {
	atomic.AddInt64(&m.GeminiAPICalls, 1)
}

// RecordAssessment records one completed assessment and its decision
func (m *Metrics) RecordAssessment(decision string) {
	atomic.AddInt64(&m.AssessmentCount, 1)

	m.decisionMutex.Lock()
	m.DecisionCounts[decision]++
	m.decisionMutex.Unlock()
}

// IncrementRateLimitIPBlock increments the per-IP rate limit block count
func (m *Metrics) IncrementRateLimitIPBlock() {
	atomic.AddInt64(&m.RateLimitIPBlocks, 1)
}

// IncrementRateLimitRedisError increments the Redis failure count
func (m *Metrics) IncrementRateLimitRedisError() {
	atomic.AddInt64(&m.RateLimitRedisErrors, 1)
}

// IncrementRateLimitFallback increments the in-memory fallback count
func (m *Metrics) IncrementRateLimitFallback() {
	atomic.AddInt64(&m.RateLimitFallbackCount, 1)
}

// RecordResponseTime records response time for averaging
func (m *Metrics) RecordResponseTime(duration time.Duration) {
	current := atomic.LoadInt64(&m.AverageResponseTime)
	newAverage := (current + duration.Nanoseconds()) / 2
	atomic.StoreInt64(&m.AverageResponseTime, newAverage)
}

// RecordRequestByStatus records request count by HTTP status code
func (m *Metrics) RecordRequestByStatus(statusCode int) {
	m.statusMutex.Lock()
	defer m.statusMutex.Unlock()
	m.RequestCountByStatus[statusCode]++
}

// GetStats returns a snapshot of current metrics
func (m *Metrics) GetStats() map[string]interface{} {
	m.decisionMutex.RLock()
	decisions := make(map[string]int64, len(m.DecisionCounts))
	for k, v := range m.DecisionCounts {
		decisions[k] = v
	}
	m.decisionMutex.RUnlock()

	m.statusMutex.RLock()
	byStatus := make(map[int]int64, len(m.RequestCountByStatus))
	for k, v := range m.RequestCountByStatus {
		byStatus[k] = v
	}
	m.statusMutex.RUnlock()

	return map[string]interface{}{
		"request_count":            atomic.LoadInt64(&m.RequestCount),
		"error_count":              atomic.LoadInt64(&m.ErrorCount),
		"cache_hits":               atomic.LoadInt64(&m.CacheHits),
		"cache_misses":             atomic.LoadInt64(&m.CacheMisses),
		"assessment_count":         atomic.LoadInt64(&m.AssessmentCount),
		"gemini_api_calls":         atomic.LoadInt64(&m.GeminiAPICalls),
		"decisions":                decisions,
		"requests_by_status":       byStatus,
		"avg_response_time_ms":     time.Duration(atomic.LoadInt64(&m.AverageResponseTime)).Milliseconds(),
		"rate_limit_ip_blocks":     atomic.LoadInt64(&m.RateLimitIPBlocks),
		"rate_limit_redis_errors":  atomic.LoadInt64(&m.RateLimitRedisErrors),
		"rate_limit_fallback_hits": atomic.LoadInt64(&m.RateLimitFallbackCount),
		"uptime_seconds":           time.Since(m.StartTime).Seconds(),
	}
}
