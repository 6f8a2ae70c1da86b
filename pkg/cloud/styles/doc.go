// Package styles provides visual styles for word-cloud SVG output.
//
// A [Style] decides how each placed label is drawn: its fill, font and the
// optional debug outline of its padded box. Two styles are built in:
//
//   - [Simple]: one ink color, weight shown by font size only
//   - [Palette]: per-text hue and weight-driven lightness, built with
//     go-colorful in the HCL space so colors stay perceptually even
//
// Styles are stateless apart from their seed and are safe to share between
// concurrent renders. Use [ByName] to resolve a style from a flag value.
package styles
