package models

// SystemMetrics is a lightweight aggregate snapshot served to admins.
type SystemMetrics struct {
	RequestCount         uint64  `json:"request_count"`
	AvgRequestMs         float64 `json:"avg_request_ms"`
	PersistCount         uint64  `json:"persist_count"`
	PersistFailures      uint64  `json:"persist_failures"`
	AvgPersistMs         float64 `json:"avg_persist_ms"`
	TutorCalls           uint64  `json:"tutor_calls"`
	TutorFallbacks       uint64  `json:"tutor_fallbacks"`
	TutorSuccessRatio    float64 `json:"tutor_success_ratio"`
	GoroutineCount       int     `json:"goroutine_count"`
	HeapAllocatedBytes   uint64  `json:"heap_allocated_bytes"`
	TotalAllocatedBytes  uint64  `json:"total_allocated_bytes"`
}
