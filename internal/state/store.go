package state

import (
	"sync"
	"time"

	"github.com/five82/triage/internal/session"
)

// Snapshot represents the latest session output available to the UI.
type Snapshot struct {
	SessionID     uint64
	State         session.State
	Text          string
	Pending       bool // waiting indicator visible
	Complete      bool // completion marker visible
	Error         string
	SubmitEnabled bool
	Version       uint64 // bumped on every write
	UpdatedAt     time.Time
}

// Store holds the displayed session output. It implements session.View so
// the controller can write to it from any goroutine while the UI reads
// snapshots.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	changes  chan struct{}
}

var _ session.View = (*Store)(nil)

// NewStore returns an idle store with submission enabled.
func NewStore() *Store {
	return &Store{
		snapshot: Snapshot{State: session.Idle, SubmitEnabled: true, UpdatedAt: time.Now()},
		changes:  make(chan struct{}, 1),
	}
}

// Changes delivers a signal after writes. Signals coalesce: a reader that
// falls behind sees one pending signal and should read a fresh Snapshot.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Store) Reset(sessionID uint64) {
	s.update(func(snap *Snapshot) {
		*snap = Snapshot{
			SessionID:     sessionID,
			State:         session.Idle,
			SubmitEnabled: true,
			Version:       snap.Version,
		}
	})
}

func (s *Store) SetState(st session.State) {
	s.update(func(snap *Snapshot) {
		snap.State = st
		snap.SubmitEnabled = !st.Busy()
		if st != session.Processing {
			snap.Pending = false
		}
	})
}

func (s *Store) SetSubmitEnabled(enabled bool) {
	s.update(func(snap *Snapshot) { snap.SubmitEnabled = enabled })
}

func (s *Store) ShowPending() {
	s.update(func(snap *Snapshot) { snap.Pending = true })
}

func (s *Store) Render(text string) {
	s.update(func(snap *Snapshot) {
		snap.Text = text
		snap.Pending = false
	})
}

func (s *Store) MarkComplete() {
	s.update(func(snap *Snapshot) { snap.Complete = true })
}

func (s *Store) ShowError(message string) {
	s.update(func(snap *Snapshot) {
		snap.Error = message
		snap.Text = ""
		snap.Pending = false
		snap.Complete = false
	})
}

func (s *Store) update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.snapshot)
	s.snapshot.Version++
	s.snapshot.UpdatedAt = time.Now()
	s.mu.Unlock()

	select {
	case s.changes <- struct{}{}:
	default:
	}
}
