package io

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

//go:embed labels.schema.json
var labelsSchemaJSON []byte

var labelsSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(labelsSchemaJSON))
})

// LabelsSchema returns the JSON Schema that JSON label files must satisfy.
func LabelsSchema() []byte { return labelsSchemaJSON }

// validateLabelsJSON checks data against the labels schema and reports every
// violation in one INVALID_FORMAT error.
func validateLabelsJSON(data []byte) error {
	schema, err := labelsSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "compile labels schema")
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse JSON")
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New(errors.ErrCodeInvalidFormat, "labels do not match schema: %s", strings.Join(msgs, "; "))
}
