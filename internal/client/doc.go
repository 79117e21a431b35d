// Package client provides the HTTP client for the triage API.
//
// # Endpoints
//
//   - POST /api/triage_stream: JSON {name, age, symptoms}; a 2xx reply is a
//     plain-text body streamed in arbitrary chunks
//   - GET /api/health: any JSON document
//
// # Submission
//
// Submit makes a single attempt and never retries. It does not read the
// success body; the returned Response hands the open stream to the caller,
// which decodes it chunk by chunk and must Close it. Cancellation is taken
// from the context, so the deadline token owned by the caller aborts both
// the request and any in-progress body read.
//
// Failures are reported with the triage error types:
//
//	ctx canceled            -> *triage.NetworkError
//	dial/reset/other        -> *triage.TransportError
//	non-2xx status          -> *triage.ServerError{Status, Detail}
//
// Detail comes from a JSON body of the form {"detail": "..."}; when the body
// is missing, is not JSON, or the field is absent, Detail falls back to
// "HTTP error! Status: <code>".
//
// Every submission carries a fresh X-Request-ID so client and server logs
// can be correlated.
//
// # Base URL
//
// NewClient accepts either host:port (http is assumed) or a full URL; any
// path, query or fragment is dropped.
package client
