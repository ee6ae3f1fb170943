package queue

import (
	"math"
	"sync"
	"time"
)

// defaultEstimation is reported before any job has completed.
const defaultEstimation = 1.0

// Estimator keeps a bounded history of the most recent completed-job
// durations and derives the wait estimate broadcast to pending clients.
// The estimate intentionally biases toward the last observed latency rather
// than the pure historical average, reflecting current load.
type Estimator struct {
	mu          sync.Mutex
	window      int
	concurrency int
	history     []float64 // seconds, completion order
	eta         float64
}

// NewEstimator sizes the rolling window and fixes the concurrency divisor.
func NewEstimator(window, concurrency int) *Estimator {
	if window <= 0 {
		window = defaultEstimatorWindow
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Estimator{
		window:      window,
		concurrency: concurrency,
		history:     make([]float64, 0, window),
		eta:         defaultEstimation,
	}
}

// Record appends a completed-job duration, evicting the oldest entry beyond
// the window, and recomputes the ETA as average(history)/concurrency + last,
// rounded to 2 decimal places.
func (e *Estimator) Record(d time.Duration) {
	secs := math.Round(d.Seconds()*1000) / 1000
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = append(e.history, secs)
	if len(e.history) > e.window {
		e.history = e.history[1:]
	}
	var sum float64
	for _, v := range e.history {
		sum += v
	}
	avg := sum / float64(len(e.history))
	e.eta = math.Round((avg/float64(e.concurrency)+secs)*100) / 100
}

// Estimate returns the current ETA in seconds. Cheap and non-blocking; safe
// to call from the notifier and admission loops.
func (e *Estimator) Estimate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eta
}

// Len reports how many durations the window currently holds.
func (e *Estimator) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.history)
}

// History returns a copy of the window in completion order, oldest first.
func (e *Estimator) History() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]float64, len(e.history))
	copy(out, e.history)
	return out
}
