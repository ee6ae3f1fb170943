package queue

import (
	"sync"
	"time"

	"dispatchd/pkg/types"
)

// notifyLoop broadcasts the current estimation to every pending client on a
// fixed interval, independent of admission events. An empty queue is skipped.
func (d *Dispatcher) notifyLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(d.cfg.BroadcastInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		if d.pendingLen() == 0 {
			continue
		}
		d.broadcastEstimation()
	}
}

// broadcastEstimation sends the current ETA to every still-pending client,
// concurrently and unordered. Each send failure drops that job as dead.
func (d *Dispatcher) broadcastEstimation() {
	d.mu.Lock()
	jobs := make([]*Job, len(d.pending))
	copy(jobs, d.pending)
	d.mu.Unlock()

	est := types.NewEstimation(len(jobs), d.est.Estimate())
	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func(j *Job) {
			defer wg.Done()
			if !j.ch.Send(est) {
				d.dropDead(j)
			}
		}(job)
	}
	wg.Wait()
	broadcastsTotal.Inc()
}
