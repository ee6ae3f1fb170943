package queue

import (
	"time"

	"dispatchd/pkg/types"
)

// Status builds a read-only snapshot for GET /status.
func (d *Dispatcher) Status() types.StatusResponse {
	d.mu.Lock()
	resp := types.StatusResponse{
		Running:     d.running.Load(),
		QueueSize:   len(d.pending),
		Concurrency: d.cfg.Concurrency,
		Slots:       make([]types.SlotStatus, len(d.slots)),
	}
	for i, j := range d.slots {
		resp.Slots[i] = types.SlotStatus{Index: i}
		if j != nil {
			resp.Slots[i].JobID = j.ID()
		}
	}
	d.mu.Unlock()

	resp.EstimationSeconds = d.est.Estimate()
	resp.HistorySize = d.est.Len()
	resp.CompletedTotal = d.completedTotal.Load()
	resp.FailedTotal = d.failedTotal.Load()
	resp.DeadChannelsTotal = d.deadTotal.Load()
	resp.UptimeSeconds = int64(time.Since(d.startTime).Seconds())
	resp.ServerTimeUnix = time.Now().Unix()
	return resp
}
