// Package app wires configuration, logging, the API client, the session
// controller and the UI into the triage TUI.
//
// # Startup
//
//  1. Load ~/.config/triage/config.toml (optional) and apply flag overrides
//  2. Open the log file; the TUI owns the terminal
//  3. Build the API client, the state store and the session controller
//  4. Probe /api/health in the background, logging the model status
//  5. Run the Bubble Tea program until quit or context cancellation
//
// The health probe never blocks startup and never touches the UI. A model
// that is not ready yet only produces a log warning.
//
// # Errors
//
// Run returns an error for an unreadable config, an unopenable log file or
// an invalid api_bind. Failures inside a session are shown in the UI and
// logged, never returned.
package app
