package queue

import "sync"

// MemoryPublisher records every published event in order. Tests use it to
// assert on a job's lifecycle (enqueued, admitted, completed and so on).
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryPublisher returns an empty recorder.
func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

// Publish appends e. Safe for concurrent use by dispatcher goroutines.
func (p *MemoryPublisher) Publish(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

// Events returns a snapshot of everything published so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

// ByJob returns the recorded events carrying the given job ID, in order.
func (p *MemoryPublisher) ByJob(jobID string) []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []Event
	for _, e := range p.events {
		if e.JobID == jobID {
			out = append(out, e)
		}
	}
	return out
}
