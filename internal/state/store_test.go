package state

import (
	"sync"
	"testing"
	"time"

	"github.com/five82/triage/internal/session"
)

func TestStore_NewStoreIsIdle(t *testing.T) {
	s := NewStore()
	snap := s.Snapshot()
	if snap.State != session.Idle {
		t.Fatalf("State = %v, want idle", snap.State)
	}
	if !snap.SubmitEnabled {
		t.Fatalf("SubmitEnabled = false, want true")
	}
	if snap.Text != "" || snap.Error != "" || snap.Pending || snap.Complete {
		t.Fatalf("fresh snapshot not empty: %#v", snap)
	}
}

func TestStore_SessionLifecycle(t *testing.T) {
	s := NewStore()

	before := time.Now()
	s.Reset(7)
	s.SetState(session.Processing)
	s.ShowPending()

	snap := s.Snapshot()
	if snap.SessionID != 7 || snap.State != session.Processing || !snap.Pending || snap.SubmitEnabled {
		t.Fatalf("processing snapshot = %#v", snap)
	}
	if snap.UpdatedAt.Before(before) {
		t.Fatalf("UpdatedAt = %v, want >= %v", snap.UpdatedAt, before)
	}

	s.SetState(session.Streaming)
	s.Render("Rest ")
	s.Render("Rest and drink water.")
	snap = s.Snapshot()
	if snap.Pending {
		t.Fatalf("Pending = true after Render")
	}
	if snap.Text != "Rest and drink water." {
		t.Fatalf("Text = %q, want full text", snap.Text)
	}

	s.SetState(session.Complete)
	s.MarkComplete()
	snap = s.Snapshot()
	if snap.State != session.Complete || !snap.Complete || !snap.SubmitEnabled {
		t.Fatalf("complete snapshot = %#v", snap)
	}
}

func TestStore_ResetClearsPreviousOutput(t *testing.T) {
	s := NewStore()
	s.Reset(1)
	s.Render("old text")
	s.ShowError("old error")
	s.MarkComplete()
	s.SetState(session.Streaming)

	versionBefore := s.Snapshot().Version
	s.Reset(2)

	snap := s.Snapshot()
	if snap.SessionID != 2 {
		t.Fatalf("SessionID = %d, want 2", snap.SessionID)
	}
	if snap.Text != "" || snap.Error != "" || snap.Complete {
		t.Fatalf("Reset kept old output: %#v", snap)
	}
	if snap.State != session.Idle || !snap.SubmitEnabled {
		t.Fatalf("Reset state = %v enabled = %t, want idle and enabled", snap.State, snap.SubmitEnabled)
	}
	if snap.Version <= versionBefore {
		t.Fatalf("Version = %d, want > %d", snap.Version, versionBefore)
	}
}

func TestStore_SubmitEnabledFollowsState(t *testing.T) {
	s := NewStore()
	check := func(step string) {
		t.Helper()
		snap := s.Snapshot()
		if snap.SubmitEnabled == snap.State.Busy() {
			t.Fatalf("after %s: state = %v, SubmitEnabled = %t", step, snap.State, snap.SubmitEnabled)
		}
	}

	s.Reset(1)
	check("Reset")
	s.SetState(session.Processing)
	check("SetState(processing)")
	s.ShowPending()
	check("ShowPending")
	s.SetState(session.Streaming)
	check("SetState(streaming)")
	s.Render("Rest.")
	check("Render")
	s.SetState(session.Complete)
	check("SetState(complete)")
	s.MarkComplete()
	check("MarkComplete")

	s.Reset(2)
	s.SetState(session.Processing)
	s.ShowError("Request timed out.")
	check("ShowError")
	s.SetState(session.Error)
	check("SetState(error)")
}

func TestStore_ShowErrorReplacesText(t *testing.T) {
	s := NewStore()
	s.Reset(1)
	s.SetState(session.Streaming)
	s.Render("Rest and")
	s.ShowError("Request timed out.")

	snap := s.Snapshot()
	if snap.Text != "" {
		t.Fatalf("Text = %q after ShowError, want empty", snap.Text)
	}
	if snap.Complete {
		t.Fatalf("Complete = true after ShowError")
	}
	if snap.Error != "Request timed out." {
		t.Fatalf("Error = %q", snap.Error)
	}
}

func TestStore_ShowErrorClearsPending(t *testing.T) {
	s := NewStore()
	s.ShowPending()
	s.ShowError("Request timed out.")
	snap := s.Snapshot()
	if snap.Pending {
		t.Fatalf("Pending = true after ShowError")
	}
	if snap.Error != "Request timed out." {
		t.Fatalf("Error = %q", snap.Error)
	}
}

func TestStore_ChangesCoalesce(t *testing.T) {
	s := NewStore()
	s.Render("a")
	s.Render("ab")
	s.Render("abc")

	select {
	case <-s.Changes():
	default:
		t.Fatalf("expected a change signal")
	}
	select {
	case <-s.Changes():
		t.Fatalf("signals should coalesce into one")
	default:
	}
	if got := s.Snapshot().Text; got != "abc" {
		t.Fatalf("Text = %q, want %q", got, "abc")
	}
}

func TestStore_ConcurrentWritersAndReaders(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s.Render("x")
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()
	if got := s.Snapshot().Version; got != 800 {
		t.Fatalf("Version = %d, want 800", got)
	}
}
