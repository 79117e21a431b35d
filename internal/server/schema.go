package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/five82/triage/internal/triage"
)

const requestSchemaName = "triage_request.json"

// requestSchema mirrors the client-side validation bounds.
var requestSchema = fmt.Sprintf(`{
  "type": "object",
  "required": ["name", "age", "symptoms"],
  "properties": {
    "name":     {"type": "string", "minLength": 1, "maxLength": %d},
    "age":      {"type": "integer", "minimum": %d, "maximum": %d},
    "symptoms": {"type": "string", "minLength": %d, "maxLength": %d}
  }
}`, triage.NameMaxLen, triage.AgeMin, triage.AgeMax, triage.SymptomsMinLen, triage.SymptomsMaxLen)

var errInvalidJSON = errors.New("invalid JSON")

func compileRequestSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(requestSchemaName, strings.NewReader(requestSchema)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(requestSchemaName)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// decodeRequest parses raw as JSON and validates it. It returns
// errInvalidJSON for unparseable input and a *jsonschema.ValidationError
// when the payload is well-formed but out of bounds.
func decodeRequest(schema *jsonschema.Schema, raw []byte) (triage.Request, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return triage.Request{}, errInvalidJSON
	}
	if err := schema.Validate(v); err != nil {
		return triage.Request{}, err
	}

	fields := v.(map[string]any)
	age, err := fields["age"].(json.Number).Float64()
	if err != nil {
		return triage.Request{}, errInvalidJSON
	}
	return triage.Request{
		Name:     fields["name"].(string),
		Age:      int(age),
		Symptoms: fields["symptoms"].(string),
	}, nil
}
