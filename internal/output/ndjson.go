package output

import (
	"encoding/json"
	"io"
)

// WriteNDJSON streams rows as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
