package server

import (
	"bytes"
	"text/template"

	"github.com/five82/triage/internal/triage"
)

var promptTemplate = template.Must(template.New("prompt").Parse(`You are a professional medical triage assistant.
Provide concise, safe, and clear medical advice.
Patient Info:
- Name: {{.Name}}
- Age: {{.Age}}
- Symptoms: {{.Symptoms}}

Triage advice:
`))

// Prompt renders the model prompt for a request.
func Prompt(req triage.Request) string {
	var buf bytes.Buffer
	// The template only reads string and int fields, so Execute cannot fail.
	_ = promptTemplate.Execute(&buf, req)
	return buf.String()
}
