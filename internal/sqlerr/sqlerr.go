// Package sqlerr classifies database driver errors.
//
// It maps PostgreSQL SQLSTATE codes onto a small set of categories and
// converts them into client-safe errs.HTTPError values.
package sqlerr
