// Package lib holds modules that do not fit strictly into other layers:
// session tokens, background job processing (Asynq) and small helpers.
package lib
