package queue

import "time"

// admitLoop continuously moves jobs from the pending queue into free slots.
// It yields briefly when the queue is empty and backs off longer when all
// slots are occupied. Job execution, prefetch and live broadcasts are fired
// off concurrently; the loop never waits for them.
func (d *Dispatcher) admitLoop(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		d.mu.Lock()
		if len(d.pending) == 0 {
			d.mu.Unlock()
			if !d.sleep(stop, d.cfg.EmptyBackoff) {
				return
			}
			continue
		}
		slot := freeSlot(d.slots)
		if slot < 0 {
			d.mu.Unlock()
			if !d.sleep(stop, d.cfg.SlotBackoff) {
				return
			}
			continue
		}
		job := d.pending[0]
		d.pending = d.pending[1:]
		d.slots[slot] = job
		depth := len(d.pending)
		occupied := 0
		for _, j := range d.slots {
			if j != nil {
				occupied++
			}
		}
		queueDepth.Set(float64(depth))
		activeSlots.Set(float64(occupied))
		d.mu.Unlock()

		d.pub.Publish(Event{Name: EventAdmitted, JobID: job.ID(), Fields: map[string]any{"slot": slot}})
		d.log.Debug().Str("job_id", job.ID()).Int("slot", slot).Msg("job admitted")

		go d.runJob(job)
		go d.prefetch()
		if d.cfg.LiveUpdates {
			go d.broadcastEstimation()
		}
	}
}

// sleep waits for dur or until stop closes, reporting whether to keep going.
func (d *Dispatcher) sleep(stop <-chan struct{}, dur time.Duration) bool {
	t := time.NewTimer(dur)
	defer t.Stop()
	select {
	case <-stop:
		return false
	case <-t.C:
		return true
	}
}

// freeSlot returns the first empty slot index, or -1.
func freeSlot(slots []*Job) int {
	for i, j := range slots {
		if j == nil {
			return i
		}
	}
	return -1
}
