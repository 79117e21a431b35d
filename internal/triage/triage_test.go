package triage

import (
	"errors"
	"strings"
	"testing"
)

func validForm() Form {
	return Form{Name: "Ann", Age: "30", Symptoms: "mild headache"}
}

func TestValidate_AcceptsAndTrims(t *testing.T) {
	req, err := Validate(Form{Name: "  Ann  ", Age: " 30 ", Symptoms: "\tmild headache\n"})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	want := Request{Name: "Ann", Age: 30, Symptoms: "mild headache"}
	if req != want {
		t.Fatalf("Validate = %#v, want %#v", req, want)
	}
}

func TestValidate_NameLength(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"empty", "", false},
		{"blank", "   ", false},
		{"one char", "A", true},
		{"fifty chars", strings.Repeat("a", 50), true},
		{"fifty chars padded", "  " + strings.Repeat("a", 50) + "  ", true},
		{"fifty one chars", strings.Repeat("a", 51), false},
		{"fifty multibyte chars", strings.Repeat("é", 50), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.Name = tt.value
			_, err := Validate(form)
			checkField(t, err, tt.ok, FieldName)
		})
	}
}

func TestValidate_AgeRange(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"", false},
		{"abc", false},
		{"30abc", false},
		{"1.5", false},
		{"-1", false},
		{"0", false},
		{"1", true},
		{"119", true},
		{"120", false},
		{"99999999999999999999", false},
	}
	for _, tt := range tests {
		t.Run("age="+tt.value, func(t *testing.T) {
			form := validForm()
			form.Age = tt.value
			_, err := Validate(form)
			checkField(t, err, tt.ok, FieldAge)
		})
	}
}

func TestValidate_SymptomsLength(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"empty", "", false},
		{"four chars", "achy", false},
		{"four chars padded", "  achy   ", false},
		{"five chars", "fever", true},
		{"five hundred chars", strings.Repeat("x", 500), true},
		{"five hundred one chars", strings.Repeat("x", 501), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.Symptoms = tt.value
			_, err := Validate(form)
			checkField(t, err, tt.ok, FieldSymptoms)
		})
	}
}

func TestValidate_ReportsFirstFailingField(t *testing.T) {
	_, err := Validate(Form{Name: "", Age: "0", Symptoms: ""})
	checkField(t, err, false, FieldName)

	_, err = Validate(Form{Name: "Ann", Age: "0", Symptoms: ""})
	checkField(t, err, false, FieldAge)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", &ValidationError{Field: FieldAge, Message: ageMessage}, ageMessage},
		{"network", &NetworkError{Err: errors.New("context canceled")}, TimeoutMessage},
		{"server detail", &ServerError{Status: 500, Detail: "model unavailable"}, "model unavailable"},
		{"server default", &ServerError{Status: 502}, "HTTP error! Status: 502"},
		{"empty", &EmptyResponseError{}, NoResponseMessage},
		{"transport", &TransportError{Err: errors.New("connection refused")}, "Error: connection refused"},
		{"other", errors.New("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Fatalf("UserMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func checkField(t *testing.T, err error, ok bool, field string) {
	t.Helper()
	if ok {
		if err != nil {
			t.Fatalf("Validate returned error %v, want nil", err)
		}
		return
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Validate error = %v, want *ValidationError", err)
	}
	if vErr.Field != field {
		t.Fatalf("ValidationError.Field = %q, want %q", vErr.Field, field)
	}
	if vErr.Message == "" {
		t.Fatalf("ValidationError.Message is empty")
	}
}
