package host

import (
	"testing"
	"time"
)

func TestTaskTimerAccumulates(t *testing.T) {
	timer := NewTaskTimer(3)

	timer.Start(0)
	time.Sleep(2 * time.Millisecond)
	timer.Start(1)
	time.Sleep(2 * time.Millisecond)
	timer.Stop()

	if timer.Total(0) <= 0 {
		t.Error("Expected task 0 to have accumulated time")
	}
	if timer.Total(1) <= 0 {
		t.Error("Expected task 1 to have accumulated time")
	}
	if timer.Total(2) != 0 {
		t.Errorf("Expected task 2 to be untouched, got %v", timer.Total(2))
	}
}

func TestTaskTimerStartStopsPrevious(t *testing.T) {
	timer := NewTaskTimer(2)

	timer.Start(0)
	time.Sleep(2 * time.Millisecond)
	timer.Start(1)

	// Task 0 must have stopped when task 1 started.
	total := timer.Total(0)
	time.Sleep(2 * time.Millisecond)
	if timer.Total(0) != total {
		t.Error("Expected task 0 to stop accumulating after task 1 started")
	}
	timer.Stop()
}

func TestTaskTimerSameTaskRestartIsNoOp(t *testing.T) {
	timer := NewTaskTimer(1)

	timer.Start(0)
	time.Sleep(2 * time.Millisecond)
	timer.Start(0)
	timer.Stop()

	// A same-id restart must not reset the running measurement.
	if timer.Total(0) < 2*time.Millisecond {
		t.Errorf("Expected at least 2ms accumulated, got %v", timer.Total(0))
	}
}

func TestTaskTimerStopWithoutStart(t *testing.T) {
	timer := NewTaskTimer(1)
	timer.Stop()
	timer.Stop()
	if timer.Total(0) != 0 {
		t.Errorf("Expected no accumulated time, got %v", timer.Total(0))
	}
}

func TestTaskTimerIgnoresInvalidIds(t *testing.T) {
	timer := NewTaskTimer(1)
	timer.Start(-1)
	timer.Start(5)
	timer.Stop()
	if timer.Total(0) != 0 {
		t.Errorf("Expected no accumulated time, got %v", timer.Total(0))
	}
}
