package ui

const appTitle = "Medical Triage Assistant"

// Layout sizes in terminal cells.
const (
	// formMaxWidth caps the form column; the advice panel takes the rest.
	formMaxWidth = 56

	// chromeLines covers the header and footer rows.
	chromeLines = 2

	// panelChrome is the advice panel's border plus horizontal padding.
	panelChrome = 4

	minResultWidth  = 10
	minResultHeight = 3
)
