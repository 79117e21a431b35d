package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestHeaderBarFillsWidth(t *testing.T) {
	theme := GetTheme("Kanagawa")
	got := headerBar(theme, theme.Styles(), 80)

	if !strings.Contains(got, appTitle) {
		t.Fatalf("header missing title: %q", got)
	}
	if !strings.Contains(got, "Kanagawa") {
		t.Fatalf("header missing theme name: %q", got)
	}
	if w := lipgloss.Width(got); w != 80 {
		t.Fatalf("header width = %d, want 80", w)
	}
}

func TestHeaderBarStaysOneLine(t *testing.T) {
	theme := GetTheme("Nightfox")
	got := headerBar(theme, theme.Styles(), 12)
	if h := lipgloss.Height(got); h != 1 {
		t.Fatalf("header height = %d, want 1:\n%s", h, got)
	}
}
