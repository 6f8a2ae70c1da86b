package layout

import "github.com/matzehuels/wordcloud/pkg/cloud/quadtree"

// Unresolved is the collision count recorded for a degraded placement, one
// that fell back to the viewport center because no candidate survived the
// search.
const Unresolved = -1

// Box is an axis-aligned rectangle anchored at its top-left corner.
type Box = quadtree.Box

// Label is a weighted piece of text to place. Only the relative magnitude of
// weights matters.
type Label struct {
	Text   string  `json:"text" yaml:"text" toml:"text"`
	Weight float64 `json:"weight" yaml:"weight" toml:"weight"`
}

// Viewport is the area labels are placed in.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool { return v.Width > 0 && v.Height > 0 }

// Bounds returns the viewport as a box at the origin.
func (v Viewport) Bounds() Box { return Box{Width: v.Width, Height: v.Height} }

// Placement is the computed position of one label.
type Placement struct {
	Text     string  `json:"text"`
	Weight   float64 `json:"weight"`
	FontSize float64 `json:"font_size"`

	// Box is the padded bounding box inserted into the spatial index.
	Box Box `json:"box"`
	// TextBox is the unpadded text extent, centered in Box.
	TextBox Box `json:"text_box"`

	// Order is the position of the label in placement order.
	Order int `json:"order"`
	// Collisions counts the earlier placed boxes whose reference point lies
	// inside the chosen box, or is Unresolved for a degraded placement.
	Collisions int  `json:"collisions"`
	Degraded   bool `json:"degraded,omitempty"`
}

// Result is a complete layout. Placements are in placement order: descending
// weight, ties in input order. Renderers iterate them in this order.
type Result struct {
	Viewport   Viewport
	Placements []Placement

	byText map[string]int
}

// NewResult builds a Result from placements already in placement order.
func NewResult(vp Viewport, placements []Placement) Result {
	r := Result{Viewport: vp, Placements: placements, byText: make(map[string]int, len(placements))}
	for i, p := range placements {
		r.byText[p.Text] = i
	}
	return r
}

// Len returns the number of placements.
func (r Result) Len() int { return len(r.Placements) }

// Lookup returns the placement for text. If the input held duplicate texts the
// one placed last is returned; every duplicate is still kept in Placements.
func (r Result) Lookup(text string) (Placement, bool) {
	i, ok := r.byText[text]
	if !ok {
		return Placement{}, false
	}
	return r.Placements[i], true
}

// DegradedCount returns how many labels fell back to the viewport center.
func (r Result) DegradedCount() int {
	n := 0
	for _, p := range r.Placements {
		if p.Degraded {
			n++
		}
	}
	return n
}
