package layout

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/cloud/quadtree"
	"github.com/matzehuels/wordcloud/pkg/errors"
)

func sampleLabels(n int) []Label {
	labels := make([]Label, n)
	for i := range labels {
		labels[i] = Label{Text: fmt.Sprintf("word%02d", i), Weight: float64((i*7)%11 + 1)}
	}
	return labels
}

func TestComputeTwoLabels(t *testing.T) {
	labels := []Label{{Text: "alpha", Weight: 10}, {Text: "beta", Weight: 1}}
	vp := Viewport{Width: 500, Height: 500}

	res := Compute(labels, vp)
	if res.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", res.Len())
	}

	alpha, ok := res.Lookup("alpha")
	if !ok {
		t.Fatal("alpha missing from result")
	}
	beta, ok := res.Lookup("beta")
	if !ok {
		t.Fatal("beta missing from result")
	}

	if alpha.FontSize <= beta.FontSize {
		t.Errorf("alpha font %v should exceed beta font %v", alpha.FontSize, beta.FontSize)
	}
	if alpha.FontSize != MaxFontSize || beta.FontSize != MinFontSize {
		t.Errorf("font sizes = %v, %v; want %v, %v", alpha.FontSize, beta.FontSize, MaxFontSize, MinFontSize)
	}
	for _, p := range []Placement{alpha, beta} {
		if p.Box.X < 0 || p.Box.Y < 0 || p.Box.Right() > 500 || p.Box.Bottom() > 500 {
			t.Errorf("%s box %+v outside viewport", p.Text, p.Box)
		}
		if p.Collisions != 0 || p.Degraded {
			t.Errorf("%s collisions = %d, degraded = %v; want 0, false", p.Text, p.Collisions, p.Degraded)
		}
	}
	if alpha.Box.Overlaps(beta.Box) {
		t.Errorf("boxes overlap: %+v and %+v", alpha.Box, beta.Box)
	}
}

func TestComputeForcedCollision(t *testing.T) {
	labels := make([]Label, 10)
	for i := range labels {
		labels[i] = Label{Text: string(rune('a' + i)), Weight: 1}
	}
	vp := Viewport{Width: 20, Height: 20}

	res := Compute(labels, vp)
	if res.Len() != len(labels) {
		t.Fatalf("Len() = %d, want %d", res.Len(), len(labels))
	}
	if got := res.DegradedCount(); got != len(labels) {
		t.Errorf("DegradedCount() = %d, want %d", got, len(labels))
	}
	for _, p := range res.Placements {
		if !p.Degraded || p.Collisions != Unresolved {
			t.Errorf("%s: degraded = %v, collisions = %d", p.Text, p.Degraded, p.Collisions)
		}
		if p.Box.CenterX() != 10 || p.Box.CenterY() != 10 {
			t.Errorf("%s: fallback center = (%v, %v), want (10, 10)", p.Text, p.Box.CenterX(), p.Box.CenterY())
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	labels := sampleLabels(40)
	vp := Viewport{Width: 800, Height: 600}

	first := Compute(labels, vp)
	for i := 0; i < 3; i++ {
		again := Compute(labels, vp)
		if !reflect.DeepEqual(first.Placements, again.Placements) {
			t.Fatalf("run %d differs from first run", i+1)
		}
	}
}

func TestComputeContainment(t *testing.T) {
	vp := Viewport{Width: 640, Height: 480}
	res := Compute(sampleLabels(60), vp)

	for _, p := range res.Placements {
		if p.Degraded {
			continue
		}
		b := p.Box
		if b.X < EdgeMargin || b.Y < EdgeMargin || b.Right() > vp.Width-EdgeMargin || b.Bottom() > vp.Height-EdgeMargin {
			t.Errorf("%s: box %+v violates edge margin", p.Text, b)
		}
	}
}

func TestComputeCollisionsCountReferencePoints(t *testing.T) {
	tests := []struct {
		name string
		n    int
		vp   Viewport
	}{
		{"roomy", 50, Viewport{Width: 600, Height: 400}},
		{"crowded", 80, Viewport{Width: 300, Height: 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(sampleLabels(tt.n), tt.vp)

			for i, p := range res.Placements {
				if p.Degraded {
					continue
				}
				want := 0
				for _, q := range res.Placements[:i] {
					if !q.Degraded && p.Box.ContainsPoint(q.Box.X, q.Box.Y) {
						want++
					}
				}
				if p.Collisions != want {
					t.Errorf("%s: Collisions = %d, want %d earlier reference points inside its box", p.Text, p.Collisions, want)
				}
			}
		})
	}
}

func TestComputeOrdering(t *testing.T) {
	labels := []Label{
		{Text: "c", Weight: 1},
		{Text: "a", Weight: 5},
		{Text: "d", Weight: 1},
		{Text: "b", Weight: 5},
	}
	res := Compute(labels, Viewport{Width: 300, Height: 300})

	want := []string{"a", "b", "c", "d"}
	for i, p := range res.Placements {
		if p.Text != want[i] {
			t.Errorf("placement %d = %q, want %q", i, p.Text, want[i])
		}
		if p.Order != i {
			t.Errorf("placement %d has Order %d", i, p.Order)
		}
	}
}

func TestComputeMonotonicSizing(t *testing.T) {
	res := Compute(sampleLabels(30), Viewport{Width: 800, Height: 800})

	for _, p := range res.Placements {
		for _, q := range res.Placements {
			if p.Weight > q.Weight && p.FontSize < q.FontSize {
				t.Errorf("%s (w=%v) smaller than %s (w=%v)", p.Text, p.Weight, q.Text, q.Weight)
			}
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	tests := []struct {
		name   string
		labels []Label
		vp     Viewport
	}{
		{"no labels", nil, Viewport{Width: 100, Height: 100}},
		{"zero viewport", []Label{{Text: "a", Weight: 1}}, Viewport{}},
		{"negative viewport", []Label{{Text: "a", Weight: 1}}, Viewport{Width: -10, Height: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if res := Compute(tt.labels, tt.vp); res.Len() != 0 {
				t.Errorf("Len() = %d, want 0", res.Len())
			}
		})
	}
}

func TestComputeSingleLabelOneStepFromCenter(t *testing.T) {
	vp := Viewport{Width: 400, Height: 200}
	res := Compute([]Label{{Text: "solo", Weight: 3}}, vp)

	p := res.Placements[0]
	step := RadiusStep * min(vp.Width, vp.Height)
	if d := math.Hypot(p.Box.CenterX()-200, p.Box.CenterY()-100); math.Abs(d-step) > 1e-9 {
		t.Errorf("distance from center = %v, want one radius step (%v)", d, step)
	}
	if p.Collisions != 0 || p.Degraded {
		t.Errorf("collisions = %d, degraded = %v", p.Collisions, p.Degraded)
	}
	if p.FontSize != MinFontSize {
		t.Errorf("FontSize = %v, want %v for a single weight", p.FontSize, MinFontSize)
	}
}

func TestComputeFallbackIsNotAnObstacle(t *testing.T) {
	// "abcd" at 28pt is 76 wide with padding, too wide for the edge margin
	// of an 80-wide viewport, yet its fallback corner lies inside it.
	vp := Viewport{Width: 80, Height: 200}
	res := Compute([]Label{{Text: "abcd", Weight: 10}, {Text: "b", Weight: 1}}, vp)

	big, small := res.Placements[0], res.Placements[1]
	if !big.Degraded || !vp.Bounds().ContainsPoint(big.Box.X, big.Box.Y) {
		t.Fatalf("abcd: degraded = %v, box %+v; want a degraded box cornered inside the viewport", big.Degraded, big.Box)
	}
	if small.Degraded || small.Collisions != 0 {
		t.Fatalf("b: degraded = %v, collisions = %d; want a clean placement", small.Degraded, small.Collisions)
	}
	step := RadiusStep * min(vp.Width, vp.Height)
	if d := math.Hypot(small.Box.CenterX()-40, small.Box.CenterY()-100); math.Abs(d-step) > 1e-9 {
		t.Errorf("b: distance from center = %v, want %v with no push from the fallback box", d, step)
	}
	if n := Index(res).Len(); n != 1 {
		t.Errorf("index holds %d boxes, want only the searched one", n)
	}
}

func TestRepulsion(t *testing.T) {
	vp := Viewport{Width: 400, Height: 400}
	e := &engine{cfg: defaultConfig(), vp: vp, index: quadtree.New(vp.Bounds())}
	e.commit(centered(200, 200, 40, 20))

	if dx, dy := e.repulsion(200, 200); dx != 0 || dy != 0 {
		t.Errorf("repulsion at a neighbor's center = (%v, %v), want (0, 0)", dx, dy)
	}
	dx, dy := e.repulsion(210, 200)
	if dx <= 0 || dy != 0 {
		t.Errorf("repulsion right of a neighbor = (%v, %v), want a push to the right", dx, dy)
	}
	want := RepulsionForce * math.Pow(1-10/repulsionRange, 1.5) * nearBoost
	if math.Abs(dx-want) > 1e-9 {
		t.Errorf("repulsion magnitude = %v, want %v", dx, want)
	}
	if dx, dy := e.repulsion(200+repulsionRange, 200); dx != 0 || dy != 0 {
		t.Errorf("repulsion at the range limit = (%v, %v), want (0, 0)", dx, dy)
	}
}

func TestComputeTextBoxInsideBox(t *testing.T) {
	res := Compute(sampleLabels(10), Viewport{Width: 500, Height: 500})

	for _, p := range res.Placements {
		if p.TextBox.X != p.Box.X+Padding || p.TextBox.Y != p.Box.Y+Padding {
			t.Errorf("%s: text box %+v not offset by padding in %+v", p.Text, p.TextBox, p.Box)
		}
		if p.TextBox.Width+2*Padding != p.Box.Width || p.TextBox.Height+2*Padding != p.Box.Height {
			t.Errorf("%s: text box %+v does not fit box %+v", p.Text, p.TextBox, p.Box)
		}
	}
}

func TestComputeDuplicates(t *testing.T) {
	labels := []Label{{Text: "go", Weight: 2}, {Text: "rust", Weight: 1}, {Text: "go", Weight: 1}}
	res := Compute(labels, Viewport{Width: 300, Height: 300})

	if res.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", res.Len())
	}
	p, ok := res.Lookup("go")
	if !ok {
		t.Fatal("go missing from result")
	}
	if p.Order != 2 {
		t.Errorf("Lookup returned Order %d, want the last placed (2)", p.Order)
	}
	if _, ok := res.Lookup("zig"); ok {
		t.Error("Lookup found a text that was never placed")
	}
}

func TestComputeOptions(t *testing.T) {
	labels := []Label{{Text: "big", Weight: 9}, {Text: "small", Weight: 1}}
	res := Compute(labels, Viewport{Width: 600, Height: 600},
		WithFontRange(10, 50), WithPadding(0), WithIterations(10))

	big, _ := res.Lookup("big")
	small, _ := res.Lookup("small")
	if big.FontSize != 50 || small.FontSize != 10 {
		t.Errorf("font sizes = %v, %v; want 50, 10", big.FontSize, small.FontSize)
	}
	if big.Box != big.TextBox {
		t.Errorf("zero padding should make Box == TextBox, got %+v and %+v", big.Box, big.TextBox)
	}
}

func TestComputeIgnoresInvalidOptions(t *testing.T) {
	labels := sampleLabels(5)
	vp := Viewport{Width: 400, Height: 400}

	want := Compute(labels, vp)
	got := Compute(labels, vp, WithFontRange(0, 10), WithFontRange(20, 10), WithPadding(-1), WithIterations(0), WithLogger(nil))
	if !reflect.DeepEqual(want.Placements, got.Placements) {
		t.Error("invalid options changed the layout")
	}
}

func TestIndexReplaysPlacements(t *testing.T) {
	res := Compute(sampleLabels(20), Viewport{Width: 500, Height: 500})

	tree := Index(res)
	if want := res.Len() - res.DegradedCount(); tree.Len() != want {
		t.Errorf("index holds %d boxes, want %d", tree.Len(), want)
	}
	if tree.Bounds() != res.Viewport.Bounds() {
		t.Errorf("index bounds = %+v, want viewport", tree.Bounds())
	}
}

func TestValidate(t *testing.T) {
	vp := Viewport{Width: 100, Height: 100}
	tests := []struct {
		name   string
		labels []Label
		vp     Viewport
		code   errors.Code
	}{
		{"valid", []Label{{Text: "a", Weight: 1}, {Text: "b", Weight: 0}}, vp, ""},
		{"empty labels", nil, vp, ""},
		{"zero width", nil, Viewport{Height: 10}, errors.ErrCodeInvalidViewport},
		{"infinite height", nil, Viewport{Width: 10, Height: math.Inf(1)}, errors.ErrCodeInvalidViewport},
		{"nan width", nil, Viewport{Width: math.NaN(), Height: 10}, errors.ErrCodeInvalidViewport},
		{"empty text", []Label{{Text: " ", Weight: 1}}, vp, errors.ErrCodeInvalidLabel},
		{"negative weight", []Label{{Text: "a", Weight: -1}}, vp, errors.ErrCodeInvalidWeight},
		{"nan weight", []Label{{Text: "a", Weight: math.NaN()}}, vp, errors.ErrCodeInvalidWeight},
		{"duplicate", []Label{{Text: "a", Weight: 1}, {Text: "a", Weight: 2}}, vp, errors.ErrCodeDuplicateLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.labels, tt.vp)
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}
