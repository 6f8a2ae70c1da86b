package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/cloud/sink"
	"github.com/matzehuels/wordcloud/pkg/errors"
)

// LayoutDocument is the decoded form of a layout JSON export.
type LayoutDocument struct {
	Result layout.Result
	Style  string
	Seed   uint64
}

type layoutJSON struct {
	Viewport   layout.Viewport    `json:"viewport"`
	Style      string             `json:"style"`
	Seed       uint64             `json:"seed"`
	Placements []layout.Placement `json:"placements"`
}

// WriteLayout encodes a layout result as JSON and writes it to w. The output
// is the sink JSON format and can be re-imported with [ReadLayout].
func WriteLayout(w io.Writer, res layout.Result, opts ...sink.JSONOption) error {
	data, err := sink.RenderJSON(res, opts...)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportLayoutJSON writes a layout result to a JSON file at path.
func ExportLayoutJSON(res layout.Result, path string, opts ...sink.JSONOption) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLayout(f, res, opts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadLayout decodes a layout JSON document. The viewport must be valid and
// every placement must carry text; placements keep their stored order.
func ReadLayout(r io.Reader) (LayoutDocument, error) {
	var doc layoutJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return LayoutDocument{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	if err := layout.ValidateViewport(doc.Viewport); err != nil {
		return LayoutDocument{}, err
	}
	for i, p := range doc.Placements {
		if p.Text == "" {
			return LayoutDocument{}, errors.New(errors.ErrCodeInvalidLabel, "placement %d has no text", i)
		}
	}
	return LayoutDocument{
		Result: layout.NewResult(doc.Viewport, doc.Placements),
		Style:  doc.Style,
		Seed:   doc.Seed,
	}, nil
}

// ImportLayoutJSON reads a layout JSON file from path.
func ImportLayoutJSON(path string) (LayoutDocument, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return LayoutDocument{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return LayoutDocument{}, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := ReadLayout(bytes.NewReader(data))
	if err != nil {
		return LayoutDocument{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// IsLayoutJSON reports whether data looks like a layout export rather than a
// label list, by checking for a top-level "placements" key.
func IsLayoutJSON(data []byte) bool {
	var probe struct {
		Placements json.RawMessage `json:"placements"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Placements != nil
}
