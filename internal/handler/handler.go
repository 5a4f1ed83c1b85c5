// Package handler is the first layer after the router.
//
// It binds and validates requests through the validation package, calls
// the service layer and writes the response. Errors are returned to the
// global error handler.
package handler
