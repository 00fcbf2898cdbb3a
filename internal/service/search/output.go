package search

import (
	"encoding/json"
	"io"

	"github.com/sandevgo/tgsearch/internal/core"
)

// WriteJSON writes records as a two-space indented JSON array followed by a newline.
func WriteJSON(w io.Writer, records []core.MatchRecord) error {
	if records == nil {
		records = []core.MatchRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
