// Package queue implements the event queue and job dispatcher that sits
// between live client connections and a bounded-concurrency prediction
// backend. It is structured into small files by concern:
//
//   - dispatcher.go: core Dispatcher type, constructor, lifecycle and queue ops.
//   - config.go: Config and package defaults; New applies defaults.
//   - job.go: Job entity and the Channel transport contract.
//   - estimator.go: rolling-window duration estimator and ETA computation.
//   - admission.go: the admission loop moving jobs from the queue into slots.
//   - process.go: per-job execution and payload gathering (incl. prefetch).
//   - broadcast.go: periodic notifier and best-effort ETA broadcasts.
//   - status.go: Status snapshot for the HTTP layer.
//   - events.go: lifecycle event seam (EventPublisher).
//   - metrics.go: Prometheus collectors for queue state and job outcomes.
//
// A dead client channel is never an error surfaced to callers: the affected
// job is silently dropped from all structures and its slot released. Backend
// invocation failures, by contrast, are delivered to the still-waiting client
// as a failed process_completed frame.
//
// External packages should treat the Dispatcher as the orchestration layer
// and use public methods only (New, Configure, Start, Stop, Enqueue, Cancel,
// Status). Internal state is subject to change.
package queue
