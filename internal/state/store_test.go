package state

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func fixedClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestStore_RecordSaveSuccess(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	now, advance := fixedClock(start)
	s := Store{Now: now}

	s.RecordSave(nil)
	advance(time.Second)
	s.RecordSave(nil)

	snap := s.Snapshot()
	if snap.Saves != 2 {
		t.Fatalf("Saves = %d, want 2", snap.Saves)
	}
	if !snap.LastSaved.Equal(start.Add(time.Second)) {
		t.Fatalf("LastSaved = %v, want %v", snap.LastSaved, start.Add(time.Second))
	}
	if snap.LastError != nil || snap.Pending() {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
}

func TestStore_RecordSaveErrorKeepsPreviousSuccess(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	now, advance := fixedClock(start)
	s := Store{Now: now}

	s.RecordSave(nil)
	advance(time.Minute)
	origErr := errors.New("boom")
	s.RecordSave(origErr)

	snap := s.Snapshot()
	if !snap.LastSaved.Equal(start) {
		t.Fatalf("LastSaved changed on error: got %v want %v", snap.LastSaved, start)
	}
	if !snap.LastAttempt.Equal(start.Add(time.Minute)) {
		t.Fatalf("LastAttempt = %v, want %v", snap.LastAttempt, start.Add(time.Minute))
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the recorded error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if s.Snapshot().IsFailing() {
		t.Fatal("IsFailing() = true, want false with 0 failures")
	}

	s.RecordSave(errors.New("fail 1"))
	if got := s.Snapshot().ConsecutiveFailures; got != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", got)
	}
	if s.Snapshot().IsFailing() {
		t.Fatal("IsFailing() = true, want false with 1 failure")
	}

	s.RecordSave(errors.New("fail 2"))
	if !s.Snapshot().IsFailing() {
		t.Fatal("IsFailing() = false, want true with 2 failures")
	}

	s.RecordSave(nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsFailing() {
		t.Fatalf("ConsecutiveFailures = %d after success, want 0", snap.ConsecutiveFailures)
	}
}

func TestStore_RecordLoad(t *testing.T) {
	var s Store
	if s.Snapshot().Loaded {
		t.Fatal("Loaded = true before RecordLoad")
	}

	s.RecordLoad(errors.New("corrupt"))
	snap := s.Snapshot()
	if !snap.Loaded || snap.LoadError == nil {
		t.Fatalf("snapshot = %#v, want loaded with error", snap)
	}
}
