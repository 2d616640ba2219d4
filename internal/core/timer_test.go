package core

import (
	"testing"
	"time"
)

func TestFixedStepDue(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	if n := fs.Due(); n != 1 {
		t.Fatalf("first Due = %d, want 1", n)
	}
	clock = clock.Add(50 * time.Millisecond)
	if n := fs.Due(); n != 0 {
		t.Fatalf("Due after half a tick = %d, want 0", n)
	}
	clock = clock.Add(260 * time.Millisecond)
	if n := fs.Due(); n != 3 {
		t.Fatalf("Due after 310ms total = %d, want 3", n)
	}
	clock = clock.Add(time.Hour)
	if n := fs.Due(); n != maxCatchUp {
		t.Fatalf("Due after a stall = %d, want %d", n, maxCatchUp)
	}
}

func TestFixedStepDefaultsTPS(t *testing.T) {
	fs := NewFixedStep(0)
	if got := fs.Interval(); got != time.Second/60 {
		t.Fatalf("Interval = %v, want %v", got, time.Second/60)
	}
}
