// Package errs defines the error shape every API failure is rendered with.
//
// Handlers and services return *HTTPError values (or plain errors, which the
// global error handler turns into a generic 500) so clients always receive
// the same JSON object with a human-readable `error` field.
package errs
