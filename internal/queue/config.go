package queue

import "time"

// Defaults applied when corresponding Config fields are unset.
const (
	defaultConcurrency       = 1
	defaultPrefetchWindow    = 30
	defaultBroadcastInterval = 10 * time.Second
	defaultEstimatorWindow   = 100
	defaultEmptyBackoff      = time.Millisecond
	defaultSlotBackoff       = time.Second
)

// Config encapsulates all tunables for Dispatcher construction. Zero values
// mean "use the package default"; PrefetchWindow may be set negative to
// disable speculative data gathering entirely.
type Config struct {
	// Concurrency is the slot pool size: the number of jobs processed at once.
	Concurrency int
	// LiveUpdates broadcasts a fresh ETA to all pending clients on every
	// admission, in addition to the periodic notifier.
	LiveUpdates bool
	// PrefetchWindow is how many head-of-queue jobs get speculative payload
	// gathering each admission tick. Negative disables prefetch.
	PrefetchWindow int
	// BroadcastInterval is the periodic notifier tick. Independent of
	// LiveUpdates.
	BroadcastInterval time.Duration
	// EstimatorWindow bounds the rolling duration history.
	EstimatorWindow int
	// EmptyBackoff is how long the admission loop yields when the queue is
	// empty; SlotBackoff when all slots are occupied.
	EmptyBackoff time.Duration
	SlotBackoff  time.Duration
}

// DefaultConfig returns the launch-time defaults.
func DefaultConfig() Config {
	return Config{
		Concurrency:       defaultConcurrency,
		LiveUpdates:       true,
		PrefetchWindow:    defaultPrefetchWindow,
		BroadcastInterval: defaultBroadcastInterval,
		EstimatorWindow:   defaultEstimatorWindow,
		EmptyBackoff:      defaultEmptyBackoff,
		SlotBackoff:       defaultSlotBackoff,
	}
}

// withDefaults fills unset numeric fields. LiveUpdates is left as given: a
// zero-value Config runs with live broadcasts off, DefaultConfig turns them on.
func (c Config) withDefaults() Config {
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}
	if c.PrefetchWindow == 0 {
		c.PrefetchWindow = defaultPrefetchWindow
	}
	if c.BroadcastInterval <= 0 {
		c.BroadcastInterval = defaultBroadcastInterval
	}
	if c.EstimatorWindow <= 0 {
		c.EstimatorWindow = defaultEstimatorWindow
	}
	if c.EmptyBackoff <= 0 {
		c.EmptyBackoff = defaultEmptyBackoff
	}
	if c.SlotBackoff <= 0 {
		c.SlotBackoff = defaultSlotBackoff
	}
	return c
}
