package queue

import (
	"testing"
	"time"
)

func TestEstimatorDefaultETA(t *testing.T) {
	e := NewEstimator(100, 1)
	if got := e.Estimate(); got != 1 {
		t.Fatalf("expected default estimation 1, got %v", got)
	}
	if e.Len() != 0 {
		t.Fatalf("expected empty history, got %d", e.Len())
	}
}

func TestEstimatorFormulaIdenticalDurations(t *testing.T) {
	// window filled with identical durations d and concurrency c must yield
	// d/c + d rounded to 2 decimals.
	e := NewEstimator(5, 2)
	for i := 0; i < 5; i++ {
		e.Record(1500 * time.Millisecond)
	}
	if got := e.Estimate(); got != 2.25 {
		t.Fatalf("expected 2.25, got %v", got)
	}
}

func TestEstimatorWindowEviction(t *testing.T) {
	e := NewEstimator(3, 1)
	for _, d := range []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 4 * time.Second} {
		e.Record(d)
	}
	h := e.History()
	if len(h) != 3 {
		t.Fatalf("expected window of 3, got %d", len(h))
	}
	want := []float64{2, 3, 4}
	for i, v := range want {
		if h[i] != v {
			t.Fatalf("history[%d]: expected %v, got %v", i, v, h[i])
		}
	}
}

func TestEstimatorBiasTowardLastDuration(t *testing.T) {
	e := NewEstimator(100, 1)
	e.Record(time.Second)
	e.Record(2 * time.Second)
	e.Record(3 * time.Second)
	// avg(1,2,3)/1 + 3 = 5
	if got := e.Estimate(); got != 5 {
		t.Fatalf("expected 5, got %v", got)
	}
}

func TestEstimatorRounding(t *testing.T) {
	e := NewEstimator(100, 1)
	e.Record(333 * time.Millisecond)
	h := e.History()
	if h[0] != 0.333 {
		t.Fatalf("expected duration recorded as 0.333, got %v", h[0])
	}
	if got := e.Estimate(); got != 0.67 {
		t.Fatalf("expected 0.67, got %v", got)
	}
}

func TestEstimatorHistoryIsCopy(t *testing.T) {
	e := NewEstimator(100, 1)
	e.Record(time.Second)
	h := e.History()
	h[0] = 99
	if e.History()[0] != 1 {
		t.Fatalf("history mutated via returned slice")
	}
}
