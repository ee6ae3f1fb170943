package queue

import (
	"context"
	"sync"
	"time"

	"dispatchd/pkg/types"
)

// closeNormal is the transport close code sent after a successful delivery.
const closeNormal = 1000

// runJob executes one admitted job to completion. The slot is released
// unconditionally; Stop never interrupts an in-flight run.
func (d *Dispatcher) runJob(job *Job) {
	defer func() {
		d.releaseSlot(job)
		job.finish()
	}()

	if !d.gatherData(job) {
		return
	}
	if !job.ch.Send(types.NewProcessStarts()) {
		d.dropDead(job)
		return
	}

	payload, _ := job.Data()
	start := time.Now()
	output, err := d.invoker.Invoke(context.Background(), payload)
	elapsed := time.Since(start)

	d.est.Record(elapsed)
	jobDuration.Observe(elapsed.Seconds())

	if err != nil {
		d.failedTotal.Add(1)
		jobsTotal.WithLabelValues(outcomeBackendError).Inc()
		d.pub.Publish(Event{Name: EventFailed, JobID: job.ID(), Fields: map[string]any{"error": err.Error()}})
		d.log.Error().Err(err).Str("job_id", job.ID()).Dur("dur", elapsed).Msg("backend invocation failed")
		// The client is still waiting; deliver the failure rather than
		// stranding it.
		if job.ch.Send(types.NewProcessFailed(err.Error())) {
			job.ch.Close(closeNormal)
		}
		return
	}

	if job.ch.Send(types.NewProcessCompleted(output)) {
		job.ch.Close(closeNormal)
		d.completedTotal.Add(1)
		jobsTotal.WithLabelValues(outcomeCompleted).Inc()
		d.pub.Publish(Event{Name: EventCompleted, JobID: job.ID()})
		d.log.Debug().Str("job_id", job.ID()).Dur("dur", elapsed).Msg("job completed")
		return
	}
	d.dropDead(job)
}

// gatherData ensures the job's payload is present, requesting it from the
// client when absent. Returns false when the channel is found dead; the job
// will already have been removed from the pending queue.
func (d *Dispatcher) gatherData(job *Job) bool {
	job.gatherMu.Lock()
	defer job.gatherMu.Unlock()
	if _, ok := job.Data(); ok {
		return true
	}
	if !job.ch.Send(types.NewDataRequest()) {
		d.dropDead(job)
		return false
	}
	raw, ok := job.ch.Receive()
	if !ok {
		d.dropDead(job)
		return false
	}
	job.SetData(raw)
	return true
}

// prefetch opportunistically gathers payloads for the first PrefetchWindow
// still-pending jobs, concurrently and best-effort. Failures are handled
// per-job as client death.
func (d *Dispatcher) prefetch() {
	n := d.cfg.PrefetchWindow
	if n <= 0 {
		return
	}
	d.mu.Lock()
	if n > len(d.pending) {
		n = len(d.pending)
	}
	head := make([]*Job, n)
	copy(head, d.pending[:n])
	d.mu.Unlock()

	var wg sync.WaitGroup
	for _, job := range head {
		wg.Add(1)
		go func(j *Job) {
			defer wg.Done()
			d.gatherData(j)
		}(job)
	}
	wg.Wait()
}
