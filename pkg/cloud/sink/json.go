package sink

import (
	"encoding/json"

	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
	seed  uint64
}

// WithJSONStyle records the style name in the output so a later render of
// the exported layout can reuse it.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONSeed records the palette seed in the output.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

type jsonOutput struct {
	Viewport   layout.Viewport    `json:"viewport"`
	Style      string             `json:"style,omitempty"`
	Seed       uint64             `json:"seed,omitempty"`
	Degraded   int                `json:"degraded"`
	Placements []layout.Placement `json:"placements"`
}

// RenderJSON exports a layout result as a pretty-printed JSON document:
// the viewport, the degraded count and every placement in placement order.
// The document can be read back with io.ReadLayout.
func RenderJSON(res layout.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	placements := res.Placements
	if placements == nil {
		placements = []layout.Placement{}
	}
	return json.MarshalIndent(jsonOutput{
		Viewport:   res.Viewport,
		Style:      r.style,
		Seed:       r.seed,
		Degraded:   res.DegradedCount(),
		Placements: placements,
	}, "", "  ")
}
