package io

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Format identifies a label file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
)

// Formats lists the supported input formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML, FormatCSV, FormatText}
}

// ParseFormat resolves a format name, accepting common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "csv":
		return FormatCSV, nil
	case "txt", "text", "md":
		return FormatText, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format of %s: no extension", path)
	}
	return ParseFormat(ext)
}

// labelSet is the wrapped form accepted by the structured formats.
type labelSet struct {
	Labels []layout.Label `json:"labels" yaml:"labels" toml:"labels"`
}

// ReadLabels decodes labels from r in the given format.
//
// Structured formats accept either a bare list of {text, weight} entries or
// an object with a "labels" list. CSV rows are text,weight with an optional
// header; a single column gives every label weight 1. Plain text is split
// into words and counted with [CountWords] using opts.
//
// Decoding does not validate weights or duplicates; use layout.Validate.
func ReadLabels(r io.Reader, format Format, opts CountOptions) ([]layout.Label, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatTOML:
		return decodeTOML(data)
	case FormatCSV:
		return decodeCSV(data)
	case FormatText:
		return CountWords(string(data), opts), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", format)
	}
}

// ReadLabelsFile reads labels from path, choosing the format by extension.
func ReadLabelsFile(path string, opts CountOptions) ([]layout.Label, error) {
	if err := errors.ValidateInputPath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	labels, err := ReadLabels(f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return labels, nil
}

func decodeJSON(data []byte) ([]layout.Label, error) {
	if err := validateLabelsJSON(data); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var labels []layout.Label
		if err := json.Unmarshal(trimmed, &labels); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON labels")
		}
		return labels, nil
	}
	var set labelSet
	if err := json.Unmarshal(trimmed, &set); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON labels")
	}
	return set.Labels, nil
}

func decodeYAML(data []byte) ([]layout.Label, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML")
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var labels []layout.Label
		if err := root.Decode(&labels); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML labels")
		}
		return labels, nil
	case yaml.MappingNode:
		var set labelSet
		if err := root.Decode(&set); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML labels")
		}
		return set.Labels, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "YAML labels must be a list or a mapping with a labels key")
	}
}

func decodeTOML(data []byte) ([]layout.Label, error) {
	var set labelSet
	md, err := toml.Decode(string(data), &set)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown TOML keys: %v", undecoded)
	}
	return set.Labels, nil
}

func decodeCSV(data []byte) ([]layout.Label, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode CSV")
	}

	labels := make([]layout.Label, 0, len(records))
	for i, rec := range records {
		if i == 0 && isCSVHeader(rec) {
			continue
		}
		switch len(rec) {
		case 1:
			labels = append(labels, layout.Label{Text: rec[0], Weight: 1})
		case 2:
			w, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "CSV line %d: weight %q", i+1, rec[1])
			}
			labels = append(labels, layout.Label{Text: rec[0], Weight: w})
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "CSV line %d: want text,weight, got %d fields", i+1, len(rec))
		}
	}
	return labels, nil
}

func isCSVHeader(rec []string) bool {
	if len(rec) == 0 || !strings.EqualFold(strings.TrimSpace(rec[0]), "text") {
		return false
	}
	return len(rec) == 1 || strings.EqualFold(strings.TrimSpace(rec[1]), "weight")
}
