// Package ui provides the Bubble Tea terminal interface for triage.
//
// # Layout
//
//	┌ Medical Triage Assistant ─────────────────────────────────┐
//	│ Name       │ [STATE] ⣾ Processing your request...          │
//	│ Age        │                                               │
//	│ Symptoms   │ advice text, scrolled to the newest line      │
//	│ [button]   │ ✓ Response complete                           │
//	└───────────────────────────────────────────────────────────┘
//
// # Data Flow
//
// The session controller writes into a state.Store from a worker goroutine.
// The model waits on Store.Changes and re-renders from Store.Snapshot, so
// the Bubble Tea loop remains the only goroutine touching widgets. A submit
// runs Controller.Submit inside a tea.Cmd and reports back with a
// sessionDoneMsg, which is where validation failures mark their field.
//
// # Keys
//
// tab/shift+tab move focus, enter presses the button (or advances from a
// single-line field), ctrl+s submits from anywhere, pgup/pgdown scroll the
// advice, ctrl+t cycles the theme, f1 toggles help and ctrl+c quits.
//
// # Themes
//
// Nightfox, Kanagawa and Slate. The selection is saved to prefs.toml.
package ui
