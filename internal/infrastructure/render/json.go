// Package render writes report documents in their artifact formats.
package render

import (
	"encoding/json"
	"io"

	"fretor/internal/domain/reports"
)

// JSON renders the full dataset as indented JSON. It also backs the pdf
// format until a real PDF renderer exists, so pdf requests produce a .json
// artifact rather than failing.
type JSON struct{}

// NewJSON creates the JSON renderer.
func NewJSON() JSON { return JSON{} }

func (JSON) Extension() string { return "json" }

func (JSON) Render(w io.Writer, doc reports.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
