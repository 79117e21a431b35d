package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/triage/internal/triage"
)

// Focus targets in tab order.
const (
	focusName = iota
	focusAge
	focusSymptoms
	focusButton
	focusCount
)

const (
	buttonIdle = "Get Medical Advice"
	buttonBusy = "Processing..."
)

// form holds the three triage inputs and the submit button.
type form struct {
	name     textinput.Model
	age      textinput.Model
	symptoms textarea.Model
	focus    int

	// invalid marks fields whose value failed validation until edited.
	invalid map[string]bool
}

func newForm() form {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = triage.NameMaxLen * 2
	name.Prompt = ""

	age := textinput.New()
	age.Placeholder = "Age"
	age.CharLimit = 3
	age.Prompt = ""

	symptoms := textarea.New()
	symptoms.Placeholder = "Describe the symptoms"
	symptoms.CharLimit = triage.SymptomsMaxLen * 2
	symptoms.ShowLineNumbers = false
	symptoms.SetHeight(4)

	f := form{
		name:     name,
		age:      age,
		symptoms: symptoms,
		invalid:  make(map[string]bool),
	}
	f.setFocus(focusName)
	return f
}

// values returns the raw input; validation happens in the session.
func (f form) values() triage.Form {
	return triage.Form{
		Name:     f.name.Value(),
		Age:      f.age.Value(),
		Symptoms: f.symptoms.Value(),
	}
}

func (f *form) setFocus(target int) tea.Cmd {
	f.focus = (target + focusCount) % focusCount
	f.name.Blur()
	f.age.Blur()
	f.symptoms.Blur()

	switch f.focus {
	case focusName:
		return f.name.Focus()
	case focusAge:
		return f.age.Focus()
	case focusSymptoms:
		return f.symptoms.Focus()
	}
	return nil
}

func (f *form) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *form) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

func (f form) onButton() bool { return f.focus == focusButton }

// markInvalid flags a field after a validation failure and moves focus to it.
func (f *form) markInvalid(field string) tea.Cmd {
	f.invalid[field] = true
	switch field {
	case triage.FieldName:
		return f.setFocus(focusName)
	case triage.FieldAge:
		return f.setFocus(focusAge)
	case triage.FieldSymptoms:
		return f.setFocus(focusSymptoms)
	}
	return nil
}

// update forwards msg to the focused input. Any edit clears that input's
// invalid mark.
func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case focusName:
		before := f.name.Value()
		f.name, cmd = f.name.Update(msg)
		if f.name.Value() != before {
			delete(f.invalid, triage.FieldName)
		}
	case focusAge:
		before := f.age.Value()
		f.age, cmd = f.age.Update(msg)
		if f.age.Value() != before {
			delete(f.invalid, triage.FieldAge)
		}
	case focusSymptoms:
		before := f.symptoms.Value()
		f.symptoms, cmd = f.symptoms.Update(msg)
		if f.symptoms.Value() != before {
			delete(f.invalid, triage.FieldSymptoms)
		}
	}
	return f, cmd
}

func (f *form) setWidth(width int) {
	inner := max(width-4, 10)
	f.name.Width = inner
	f.age.Width = inner
	f.symptoms.SetWidth(inner)
}

func (f form) view(styles Styles, submitEnabled bool) string {
	field := func(label, key string, focused bool, body string) string {
		box := styles.Field
		switch {
		case f.invalid[key]:
			box = styles.FieldError
		case focused:
			box = styles.FieldFocused
		}
		title := styles.MutedText.Render(label)
		if f.invalid[key] {
			title = styles.DangerText.Render(label + " !")
		}
		return lipgloss.JoinVertical(lipgloss.Left, title, box.Render(body))
	}

	button := styles.Button.Render(buttonIdle)
	switch {
	case !submitEnabled:
		button = styles.ButtonDisabled.Render(buttonBusy)
	case f.onButton():
		button = styles.ButtonFocused.Render(buttonIdle)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		field("Name", triage.FieldName, f.focus == focusName, f.name.View()),
		field("Age", triage.FieldAge, f.focus == focusAge, f.age.View()),
		field("Symptoms", triage.FieldSymptoms, f.focus == focusSymptoms, f.symptoms.View()),
		"",
		button,
	)
}
