package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/triage/internal/session"
	"github.com/five82/triage/internal/state"
)

const (
	pendingText    = "Processing your request..."
	completeMarker = "✓ Response complete"
	idleHint       = "Fill in the form and press Get Medical Advice."
)

// resultContent renders the advice text for the viewport. Wrapping happens
// here so the viewport can scroll by rendered line.
func resultContent(snap state.Snapshot, styles Styles, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 10))

	var b strings.Builder
	if snap.Text != "" {
		b.WriteString(wrap.Render(styles.Text.Render(snap.Text)))
	}
	if snap.Complete {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(styles.SuccessText.Render(completeMarker))
	}
	if snap.Error != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(wrap.Render(styles.DangerText.Render(snap.Error)))
	}
	if b.Len() == 0 && snap.State == session.Idle {
		b.WriteString(styles.FaintText.Render(idleHint))
	}
	return b.String()
}

// statusLine renders the state badge plus the pending indicator.
func statusLine(snap state.Snapshot, styles Styles, spinnerView string) string {
	badge := styles.StateStyle(snap.State).Render(strings.ToUpper(snap.State.String()))
	if snap.Pending {
		return badge + " " + spinnerView + " " + styles.WarningText.Render(pendingText)
	}
	if snap.State == session.Streaming {
		return badge + " " + spinnerView
	}
	return badge
}
