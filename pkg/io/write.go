package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/errors"
)

// WriteLabels encodes labels in a structured format that [ReadLabels] reads
// back unchanged. JSON and YAML are written as bare lists, TOML as a
// [[labels]] table array since TOML has no top-level arrays, and CSV with a
// text,weight header. Plain text has no weights and is rejected.
func WriteLabels(w io.Writer, labels []layout.Label, format Format) error {
	if labels == nil {
		labels = []layout.Label{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(labels)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(labels); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(labelSet{Labels: labels})
	case FormatCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"text", "weight"})
		for _, l := range labels {
			_ = cw.Write([]string{l.Text, strconv.FormatFloat(l.Weight, 'g', -1, 64)})
		}
		cw.Flush()
		return cw.Error()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "cannot write labels as %q", format)
	}
}

// WriteLabelsFile writes labels to path, choosing the format by extension.
func WriteLabelsFile(path string, labels []layout.Label) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if format == FormatText {
		return errors.New(errors.ErrCodeInvalidFormat, "cannot write labels as %q", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLabels(f, labels, format); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
