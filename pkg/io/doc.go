// Package io reads word-cloud input and reads and writes computed layouts.
//
// # Label Files
//
// [ReadLabelsFile] picks a decoder by extension:
//
//	.json        [{"text": "go", "weight": 12}, ...] or {"labels": [...]}
//	.yaml .yml   the same shapes in YAML
//	.toml        [[labels]] tables with text and weight keys
//	.csv         text,weight rows, optional "text,weight" header
//	.txt .md     free text, counted into labels with [CountWords]
//
// JSON input is checked against an embedded JSON Schema ([LabelsSchema])
// before decoding so every structural problem is reported at once. Decoders
// do not enforce weight or duplicate rules; callers run layout.Validate.
//
// # Word Counting
//
// [CountWords] segments text on Unicode word boundaries (UAX #29), lower-cases
// with locale-aware rules, drops short words and stop words, and weights each
// distinct word by its count.
//
//	labels := io.CountWords(text, io.CountOptions{Top: 100})
//
// [WriteLabels] and [WriteLabelsFile] encode labels back into any structured
// format, which is how counted words are saved for editing.
//
// # Layout Files
//
// [WriteLayout] and [ExportLayoutJSON] write the sink JSON format;
// [ReadLayout] and [ImportLayoutJSON] read it back so a layout can be
// rendered again without recomputing it. Import, render, export and re-import
// give identical results.
package io
