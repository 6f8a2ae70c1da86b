package styles

import "bytes"

// Style defines the visual appearance of a rendered word cloud.
// Implementations control how labels and their debug boxes are drawn.
type Style interface {
	// Name identifies the style in JSON output and on the command line.
	Name() string
	// RenderDefs writes SVG <defs> and shared <style> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderBox writes the debug outline of a label's padded box.
	RenderBox(buf *bytes.Buffer, l Label)
	// RenderLabel writes the SVG for a label's text.
	RenderLabel(buf *bytes.Buffer, l Label)
}

// Label contains all data needed to render a single placed label.
type Label struct {
	ID         string  // Element identifier, unique within a document
	Text       string  // Display text
	Weight     float64 // Raw weight
	Norm       float64 // Weight normalized to [0, 1] across the result
	FontSize   float64 // Font size in user units
	X, Y, W, H float64 // Padded box
	CX, CY     float64 // Center coordinates (for text)
	Degraded   bool    // Whether the label fell back to the center
}

// ByName returns the style registered under name. Palette styles are seeded
// with seed.
func ByName(name string, seed uint64) (Style, bool) {
	switch name {
	case "", SimpleName:
		return Simple{}, true
	case PaletteName:
		return NewPalette(seed), true
	default:
		return nil, false
	}
}

// Names lists the available style names.
func Names() []string { return []string{SimpleName, PaletteName} }
