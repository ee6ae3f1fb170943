package types

// SlotStatus describes one admission slot for /status.
type SlotStatus struct {
	// Slot index within the pool.
	// example: 0
	Index int `json:"index" example:"0"`
	// ID of the job occupying the slot; empty when free.
	// example: 7b1d2c4e-93a1-4a25-b1f2-0cb6f29f1a44
	JobID string `json:"job_id,omitempty" example:"7b1d2c4e-93a1-4a25-b1f2-0cb6f29f1a44"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Whether the admission and notifier loops are running.
	// example: true
	Running bool `json:"running" example:"true"`
	// Number of jobs waiting for admission.
	// example: 3
	QueueSize int `json:"queue_size" example:"3"`
	// Configured concurrency limit (slot pool size).
	// example: 1
	Concurrency int `json:"concurrency" example:"1"`
	// Per-slot occupancy.
	Slots []SlotStatus `json:"slots"`
	// Current wait estimate in seconds broadcast to pending clients.
	// example: 4.25
	EstimationSeconds float64 `json:"estimation_seconds" example:"4.25"`
	// Number of completed-job durations currently in the estimator window.
	// example: 42
	HistorySize int `json:"history_size" example:"42"`
	// Jobs that completed with a backend result delivered.
	// example: 40
	CompletedTotal uint64 `json:"completed_total" example:"40"`
	// Jobs whose backend invocation failed.
	// example: 1
	FailedTotal uint64 `json:"failed_total" example:"1"`
	// Jobs dropped because their client channel died.
	// example: 1
	DeadChannelsTotal uint64 `json:"dead_channels_total" example:"1"`
	// Uptime of the dispatcher in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
