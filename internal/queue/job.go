package queue

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"dispatchd/pkg/types"
)

// Channel is the capability set a client transport must provide. Send reports
// delivery failure as false and never panics. Receive returns ok=false when
// the peer yields no further input. Close takes the transport close code.
//
// The dispatcher depends only on this contract, not on any concrete
// transport; connection lifecycle stays with the caller.
type Channel interface {
	Send(msg types.Message) bool
	Receive() (json.RawMessage, bool)
	Close(code int)
}

// Job is one unit of queued work bound to a single client channel. Its
// payload is absent until gathered from the client. A Job appears in at most
// one of the pending queue or one slot at any time.
type Job struct {
	id string
	ch Channel

	// gatherMu serializes payload gathering so a prefetch and an admitted
	// run never both ask the client for data.
	gatherMu sync.Mutex

	mu   sync.Mutex
	data json.RawMessage
	has  bool

	done     chan struct{}
	doneOnce sync.Once
	deadOnce sync.Once
}

// NewJob binds a fresh job to ch and assigns it a correlation id.
func NewJob(ch Channel) *Job {
	return &Job{
		id:   uuid.NewString(),
		ch:   ch,
		done: make(chan struct{}),
	}
}

// ID returns the job's stable correlation id.
func (j *Job) ID() string { return j.id }

// Data returns the gathered payload, if present.
func (j *Job) Data() (json.RawMessage, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.data, j.has
}

// SetData stores the payload. Gathering becomes a no-op afterwards.
func (j *Job) SetData(data json.RawMessage) {
	j.mu.Lock()
	j.data = data
	j.has = true
	j.mu.Unlock()
}

// Done is closed once the job has left all dispatcher structures, whether it
// completed, failed, was canceled, or its channel died.
func (j *Job) Done() <-chan struct{} { return j.done }

func (j *Job) finish() {
	j.doneOnce.Do(func() { close(j.done) })
}
