// Package triage defines the triage request model, its input validation,
// and the error taxonomy shared by the client, the session controller and
// the UI.
//
// # Validation
//
// Validate turns a raw Form into a Request or returns a *ValidationError
// naming the first failing field. Checks run in a fixed order and stop at
// the first violation:
//
//  1. name: 1-50 characters after trimming
//  2. age: an integer between 1 and 119 inclusive
//  3. symptoms: 5-500 characters after trimming
//
// Validation has no side effects; a rejected form never reaches the network.
//
// # Errors
//
//   - ValidationError: local, field specific
//   - NetworkError: the request was aborted through its deadline token
//   - TransportError: any other failure talking to the server
//   - ServerError: non-2xx status with an optional detail message
//   - EmptyResponseError: the stream ended without any text
//
// UserMessage maps each kind to the text shown to the user.
package triage
