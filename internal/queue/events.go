package queue

// Lifecycle event names published by the dispatcher.
const (
	EventEnqueued    = "job_enqueued"
	EventAdmitted    = "job_admitted"
	EventCompleted   = "job_completed"
	EventFailed      = "job_failed"
	EventDeadChannel = "job_dead_channel"
	EventCanceled    = "job_canceled"
)

// Event represents a job lifecycle event.
// Minimal and stable: name + job ID and optional fields via key/values.
type Event struct {
	Name   string
	JobID  string
	Fields map[string]any
}

// EventPublisher receives events from the dispatcher. Implementations should
// be lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
