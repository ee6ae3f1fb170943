package queue

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Invoker performs the prediction call for an admitted job. The observed
// latency of Invoke is the quantity fed into the estimator.
type Invoker interface {
	Invoke(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
}

// Dispatcher owns the pending job list, the slot pool and the estimator. It
// runs the admission loop and the periodic notifier, and orchestrates per-job
// execution, payload gathering and ETA broadcasts.
type Dispatcher struct {
	// mu guards pending and slots. Pop-head and occupy-slot happen under a
	// single acquisition so two admission ticks can never claim the same
	// head or the same slot.
	mu      sync.Mutex
	pending []*Job
	slots   []*Job

	cfg     Config
	est     *Estimator
	invoker Invoker
	pub     EventPublisher
	log     zerolog.Logger

	running   atomic.Bool
	stopCh    chan struct{}
	startTime time.Time

	completedTotal atomic.Uint64
	failedTotal    atomic.Uint64
	deadTotal      atomic.Uint64
}

// New constructs a Dispatcher with defaults applied to cfg. The invoker is
// required; events and logging are off until installed.
func New(invoker Invoker, cfg Config) *Dispatcher {
	d := &Dispatcher{
		invoker:   invoker,
		pub:       noopPublisher{},
		log:       zerolog.Nop(),
		startTime: time.Now(),
	}
	d.Configure(cfg)
	return d
}

// Configure sets the run parameters and re-sizes the slot pool (all slots
// empty). Must be called before Start; parameters are immutable during a run.
func (d *Dispatcher) Configure(cfg Config) {
	cfg = cfg.withDefaults()
	d.mu.Lock()
	d.cfg = cfg
	d.slots = make([]*Job, cfg.Concurrency)
	d.est = NewEstimator(cfg.EstimatorWindow, cfg.Concurrency)
	d.mu.Unlock()
}

// SetLogger installs a structured logger.
func (d *Dispatcher) SetLogger(l zerolog.Logger) { d.log = l }

// SetEventPublisher installs a lifecycle event sink. Call before Start.
func (d *Dispatcher) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	d.pub = p
}

// Start spawns the admission loop and the periodic notifier and returns
// without blocking. Calling Start twice without an intervening Stop
// duplicates the loops; callers must pair Start and Stop. A stopped
// dispatcher may be started again.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	stop := make(chan struct{})
	d.stopCh = stop
	d.mu.Unlock()
	d.running.Store(true)
	go d.admitLoop(stop)
	go d.notifyLoop(stop)
	d.log.Info().
		Int("concurrency", d.cfg.Concurrency).
		Bool("live_updates", d.cfg.LiveUpdates).
		Dur("broadcast_interval", d.cfg.BroadcastInterval).
		Msg("dispatcher started")
}

// Stop halts future admissions and broadcasts. In-flight jobs run to
// completion; nothing is forcibly canceled.
func (d *Dispatcher) Stop() {
	d.running.Store(false)
	d.mu.Lock()
	if d.stopCh != nil {
		close(d.stopCh)
		d.stopCh = nil
	}
	d.mu.Unlock()
	d.log.Info().Msg("dispatcher stopped")
}

// Running reports whether the loops are active.
func (d *Dispatcher) Running() bool { return d.running.Load() }

// Enqueue appends job to the pending queue tail. Callers must guarantee
// identity uniqueness; a duplicate enqueue is undefined.
func (d *Dispatcher) Enqueue(job *Job) {
	d.mu.Lock()
	d.pending = append(d.pending, job)
	depth := len(d.pending)
	// Gauges are updated under the lock so concurrent transitions cannot
	// leave a stale reading behind.
	queueDepth.Set(float64(depth))
	d.mu.Unlock()
	d.pub.Publish(Event{Name: EventEnqueued, JobID: job.ID()})
	d.log.Debug().Str("job_id", job.ID()).Int("queue_size", depth).Msg("job enqueued")
}

// Cancel removes job from the pending queue if present. A job not found,
// including one already admitted into a slot, is silently ignored.
func (d *Dispatcher) Cancel(job *Job) {
	if !d.remove(job) {
		return
	}
	jobsTotal.WithLabelValues(outcomeCanceled).Inc()
	d.pub.Publish(Event{Name: EventCanceled, JobID: job.ID()})
	d.log.Debug().Str("job_id", job.ID()).Msg("job canceled")
	job.finish()
}

// remove deletes job from the pending queue by identity, reporting whether it
// was present.
func (d *Dispatcher) remove(job *Job) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, j := range d.pending {
		if j == job {
			d.pending = append(d.pending[:i], d.pending[i+1:]...)
			queueDepth.Set(float64(len(d.pending)))
			return true
		}
	}
	return false
}

// dropDead removes a dead-channel job from whatever structure still holds it
// and records the outcome once. No further messages are sent on the channel
// and the job is never retried.
func (d *Dispatcher) dropDead(job *Job) {
	d.remove(job)
	job.deadOnce.Do(func() {
		d.deadTotal.Add(1)
		deadChannelsTotal.Inc()
		jobsTotal.WithLabelValues(outcomeDeadChannel).Inc()
		d.pub.Publish(Event{Name: EventDeadChannel, JobID: job.ID()})
		d.log.Debug().Str("job_id", job.ID()).Msg("client channel dead, job dropped")
	})
	job.finish()
}

// releaseSlot frees the slot occupied by job, if any.
func (d *Dispatcher) releaseSlot(job *Job) {
	d.mu.Lock()
	for i, j := range d.slots {
		if j == job {
			d.slots[i] = nil
			break
		}
	}
	occupied := 0
	for _, j := range d.slots {
		if j != nil {
			occupied++
		}
	}
	activeSlots.Set(float64(occupied))
	d.mu.Unlock()
}

func (d *Dispatcher) pendingLen() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Estimator exposes the duration estimator for status reporting and tests.
func (d *Dispatcher) Estimator() *Estimator { return d.est }
