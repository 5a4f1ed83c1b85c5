// Package utils contains small helpers that don't belong to a specific domain.
package utils

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// PrintJSON writes v to w as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "\t")

	if err := encoder.Encode(v); err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	return nil
}
