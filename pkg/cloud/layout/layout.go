package layout

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cloud/quadtree"
)

// Option configures a layout call.
type Option func(*config)

type config struct {
	minFont, maxFont float64
	padding          float64
	iterations       int
	logger           *log.Logger
}

func defaultConfig() config {
	return config{
		minFont:    MinFontSize,
		maxFont:    MaxFontSize,
		padding:    Padding,
		iterations: Iterations,
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}
}

// WithFontRange overrides the [MinFontSize, MaxFontSize] range. Ranges with
// lo <= 0 or hi < lo are ignored.
func WithFontRange(lo, hi float64) Option {
	return func(c *config) {
		if lo > 0 && hi >= lo {
			c.minFont, c.maxFont = lo, hi
		}
	}
}

// WithPadding overrides the padding added to each side of a text box.
func WithPadding(p float64) Option {
	return func(c *config) {
		if p >= 0 {
			c.padding = p
		}
	}
}

// WithIterations overrides the number of spiral steps per label.
func WithIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.iterations = n
		}
	}
}

// WithLogger sets the logger used for debug output about degraded
// placements.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// engine holds the state of a single Compute call.
type engine struct {
	cfg        config
	vp         Viewport
	index      *quadtree.Tree
	indexed    int
	maxW, maxH float64
}

// Compute places labels in vp and returns the complete layout.
//
// Labels are placed heaviest first. Each label walks a golden-angle spiral
// out from the viewport center; candidates that cross the edge margin are
// skipped, the rest are pushed away from nearby placed boxes and scored by how
// many placed reference points fall inside them. The first candidate scoring
// zero wins, otherwise the lowest-scoring one. A label with no surviving
// candidate is placed at the center, marked Degraded and left out of the
// index.
//
// Compute is deterministic: the same labels in the same order and the same
// viewport always produce the same Result. It holds no state between calls
// and is safe to call concurrently. An invalid viewport yields an empty
// Result; use [Validate] to reject bad input at the boundary.
func Compute(labels []Label, vp Viewport, opts ...Option) Result {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !vp.Valid() || len(labels) == 0 {
		return NewResult(vp, nil)
	}

	e := &engine{cfg: cfg, vp: vp, index: quadtree.New(vp.Bounds())}
	lo, hi := WeightRange(labels)

	placements := make([]Placement, 0, len(labels))
	for order, i := range Order(labels) {
		l := labels[i]
		size := FontSize(l.Weight, lo, hi, cfg.minFont, cfg.maxFont)
		placements = append(placements, e.place(l, size, order))
	}

	res := NewResult(vp, placements)
	if n := res.DegradedCount(); n > 0 {
		cfg.logger.Debug("layout degraded", "labels", len(labels), "degraded", n,
			"width", vp.Width, "height", vp.Height)
	}
	return res
}

// place searches for a position for l and returns the placement. Only
// searched positions are committed to the index; a center fallback never
// becomes an obstacle for later labels.
func (e *engine) place(l Label, fontSize float64, order int) Placement {
	tw, th := TextSize(l.Text, fontSize)
	w, h := tw+2*e.cfg.padding, th+2*e.cfg.padding

	seed := Seed(l.Text, order)
	rng := rand.New(rand.NewPCG(seed, seed))

	p := Placement{Text: l.Text, Weight: l.Weight, FontSize: fontSize, Order: order}
	if box, hits, ok := e.search(w, h, rng); ok {
		p.Box, p.Collisions = box, hits
	} else {
		p.Box = centered(e.vp.Width/2, e.vp.Height/2, w, h)
		p.Collisions, p.Degraded = Unresolved, true
		e.cfg.logger.Debug("no candidate survived, placing at center", "text", l.Text, "order", order)
	}
	p.TextBox = Box{X: p.Box.X + e.cfg.padding, Y: p.Box.Y + e.cfg.padding, Width: tw, Height: th}

	if !p.Degraded {
		e.commit(p.Box)
	}
	return p
}

// commit inserts box into the index and widens the repulsion lookup to cover
// its center.
func (e *engine) commit(box Box) {
	if !e.index.Insert(box) {
		return
	}
	e.indexed++
	e.maxW = max(e.maxW, box.Width)
	e.maxH = max(e.maxH, box.Height)
}

// Index replays a result's non-degraded boxes into a fresh spatial index, in
// placement order, reproducing the index state at the end of the Compute call.
func Index(r Result) *quadtree.Tree {
	t := quadtree.New(r.Viewport.Bounds())
	for _, p := range r.Placements {
		if !p.Degraded {
			t.Insert(p.Box)
		}
	}
	return t
}
