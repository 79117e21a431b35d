// Package state holds the session output shown by the UI.
//
// # Overview
//
// Store implements session.View. The session controller writes to it from a
// worker goroutine while the Bubble Tea program reads snapshots on its own
// goroutine:
//
//	Controller (worker):           UI (tea loop):
//	┌──────────────────┐          ┌──────────────────┐
//	│ SetState()       │          │ <-Changes()      │
//	│ Render(text)     │─────────→│ Snapshot()       │
//	│ ShowError(msg)   │ (mutex)  │ render view      │
//	└──────────────────┘          └──────────────────┘
//
// # Change notification
//
// Every write bumps Snapshot.Version and offers a signal on a one-slot
// channel. Signals coalesce, so a burst of chunk renders costs the UI a
// single redraw of the latest text.
//
// # Testing
//
// NewStore returns a ready idle store with submission enabled. The zero
// Store is not usable because Changes would be nil.
package state
