// Package server implements the dev triage API the TUI submits to.
//
// Routes:
//
//	POST /api/triage_stream   validate, prompt the model, stream plain text
//	GET  /api/health          {"status":"healthy","model":<model>}
//
// Request bodies are checked against a JSON schema with the same bounds as
// the client validator: bad JSON is a 400, out-of-range fields a 422. Output
// is flushed whenever the pending buffer holds a newline or exceeds 50
// bytes. A generator failure after the 200 has been sent is reported inline
// as "[Error streaming AI output: ...]".
//
// Generation is behind the Generator interface; Ollama is the production
// implementation.
package server
