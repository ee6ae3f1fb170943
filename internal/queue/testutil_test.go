package queue

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dispatchd/pkg/types"
)

// fakeChannel is a scriptable Channel double. Setting dieOn makes Send fail
// from the first frame of that kind onward, simulating a client that
// disconnected at a specific lifecycle stage.
type fakeChannel struct {
	name string
	rec  *orderRecorder

	mu        sync.Mutex
	sent      []types.Message
	data      json.RawMessage
	recvOK    bool
	dieOn     string
	dead      bool
	closed    bool
	closeCode int
}

func newFakeChannel(name string) *fakeChannel {
	return &fakeChannel{name: name, data: json.RawMessage(`{"input":"` + name + `"}`), recvOK: true}
}

func (c *fakeChannel) Send(m types.Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dead || (c.dieOn != "" && m.MessageKind() == c.dieOn) {
		c.dead = true
		return false
	}
	c.sent = append(c.sent, m)
	if c.rec != nil && m.MessageKind() == types.KindProcessCompleted {
		c.rec.add(c.name)
	}
	return true
}

func (c *fakeChannel) Receive() (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dead || !c.recvOK {
		return nil, false
	}
	return c.data, true
}

func (c *fakeChannel) Close(code int) {
	c.mu.Lock()
	c.closed = true
	c.closeCode = code
	c.mu.Unlock()
}

func (c *fakeChannel) kinds() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.sent))
	for i, m := range c.sent {
		out[i] = m.MessageKind()
	}
	return out
}

func (c *fakeChannel) lastSent() (types.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return nil, false
	}
	return c.sent[len(c.sent)-1], true
}

func (c *fakeChannel) wasClosed() (bool, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed, c.closeCode
}

// orderRecorder captures process_completed delivery order across channels.
type orderRecorder struct {
	mu    sync.Mutex
	names []string
}

func (r *orderRecorder) add(name string) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
}

func (r *orderRecorder) order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

// fakeInvoker is a scriptable Invoker double. Per-payload delays simulate
// backend latency; block, when non-nil, parks Invoke until closed.
type fakeInvoker struct {
	mu     sync.Mutex
	delays map[string]time.Duration
	err    error
	calls  []string
	block  chan struct{}

	inflight    atomic.Int32
	maxInflight atomic.Int32
}

func (f *fakeInvoker) Invoke(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	cur := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		max := f.maxInflight.Load()
		if cur <= max || f.maxInflight.CompareAndSwap(max, cur) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, string(payload))
	delay := f.delays[string(payload)]
	err := f.err
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(`{"ok":true}`), nil
}

func (f *fakeInvoker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// testConfig keeps backoffs short so admission-loop tests run fast, with
// prefetch and live broadcasts off unless a test enables them.
func testConfig() Config {
	return Config{
		Concurrency:       1,
		LiveUpdates:       false,
		PrefetchWindow:    -1,
		BroadcastInterval: time.Hour,
		EstimatorWindow:   10,
		EmptyBackoff:      time.Millisecond,
		SlotBackoff:       2 * time.Millisecond,
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func waitDone(t *testing.T, timeout time.Duration, jobs ...*Job) {
	t.Helper()
	for _, j := range jobs {
		select {
		case <-j.Done():
		case <-time.After(timeout):
			t.Fatalf("timed out waiting for job %s", j.ID())
		}
	}
}
