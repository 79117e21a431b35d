package triage

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field names reported by ValidationError.
const (
	FieldName     = "name"
	FieldAge      = "age"
	FieldSymptoms = "symptoms"
)

// Field limits. Lengths are counted in characters after trimming.
const (
	NameMaxLen     = 50
	AgeMin         = 1
	AgeMax         = 119
	SymptomsMinLen = 5
	SymptomsMaxLen = 500
)

const (
	nameMessage     = "Please enter a valid name (1-50 characters)"
	ageMessage      = "Please enter a valid age (1-119)"
	symptomsMessage = "Please describe symptoms (5-500 characters)"
)

// Form holds the raw field values as typed by the user.
type Form struct {
	Name     string
	Age      string
	Symptoms string
}

// Request is a validated triage submission. Values are only produced by
// Validate and are never mutated afterwards.
type Request struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Symptoms string `json:"symptoms"`
}

// Validate checks the form fields in a fixed order (name, age, symptoms)
// and stops at the first violation.
func Validate(form Form) (Request, error) {
	name := strings.TrimSpace(form.Name)
	if n := utf8.RuneCountInString(name); n < 1 || n > NameMaxLen {
		return Request{}, &ValidationError{Field: FieldName, Message: nameMessage}
	}

	age, err := strconv.Atoi(strings.TrimSpace(form.Age))
	if err != nil || age < AgeMin || age > AgeMax {
		return Request{}, &ValidationError{Field: FieldAge, Message: ageMessage}
	}

	symptoms := strings.TrimSpace(form.Symptoms)
	if n := utf8.RuneCountInString(symptoms); n < SymptomsMinLen || n > SymptomsMaxLen {
		return Request{}, &ValidationError{Field: FieldSymptoms, Message: symptomsMessage}
	}

	return Request{Name: name, Age: age, Symptoms: symptoms}, nil
}
