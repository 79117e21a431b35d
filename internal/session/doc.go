// Package session runs triage submissions and drives the lifecycle states
// a View displays.
//
// # States
//
//	Idle ──submit──> Processing ──first non-blank chunk──> Streaming
//	                     │                                     │
//	                     └──────────> Error <──────────────────┤
//	                                                           └──> Complete
//
// Validation failures go straight to Error without touching the network.
// The submit control is enabled exactly when the state is not Processing or
// Streaming: SetState moves both together, and Submit re-enables the control
// again on every exit path, panics included.
//
// # Sessions
//
// Each Submit call takes the next session id. Starting a session releases
// the previous session's deadline token, and View writes carrying a stale id
// are dropped under the controller mutex, so an aborted session can never
// overwrite the display of the one that replaced it.
//
// # Usage
//
//	ctrl := session.NewController(apiClient, store, session.Options{Logger: logger})
//	out := ctrl.Submit(ctx, triage.Form{Name: "Ann", Age: "30", Symptoms: "mild headache"})
//	if out.Err != nil {
//		logger.Warn("triage failed", "error", out.Err)
//	}
package session
