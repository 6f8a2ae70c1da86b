package quadtree

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

func TestBoxContainsPoint(t *testing.T) {
	b := Box{X: 10, Y: 20, Width: 30, Height: 40}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"top-left corner", 10, 20, true},
		{"interior", 25, 35, true},
		{"right edge excluded", 40, 30, false},
		{"bottom edge excluded", 20, 60, false},
		{"left of box", 9.9, 30, false},
		{"above box", 15, 19.9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.ContainsPoint(tt.x, tt.y); got != tt.want {
				t.Errorf("ContainsPoint(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBoxOverlaps(t *testing.T) {
	a := Box{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"same box", a, true},
		{"partial", Box{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"touching edge", Box{X: 10, Y: 0, Width: 10, Height: 10}, false},
		{"disjoint", Box{X: 20, Y: 20, Width: 5, Height: 5}, false},
		{"contained", Box{X: 2, Y: 2, Width: 2, Height: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps() not symmetric: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsertOutsideBounds(t *testing.T) {
	tree := New(Box{Width: 100, Height: 100})

	rejected := []Box{
		{X: -1, Y: 10, Width: 5, Height: 5},
		{X: 10, Y: -0.5, Width: 5, Height: 5},
		{X: 100, Y: 10, Width: 5, Height: 5},
		{X: 10, Y: 100, Width: 5, Height: 5},
	}
	for _, b := range rejected {
		if tree.Insert(b) {
			t.Errorf("Insert(%+v) = true, want false", b)
		}
	}
	if tree.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tree.Len())
	}

	// The box may extend past the bounds as long as its reference point is inside.
	if !tree.Insert(Box{X: 99, Y: 99, Width: 50, Height: 50}) {
		t.Error("Insert() should accept a box whose reference point is inside")
	}
}

func TestSubdivision(t *testing.T) {
	tree := New(Box{Width: 100, Height: 100})
	points := [][2]float64{{10, 10}, {60, 10}, {10, 60}, {60, 60}}
	for _, p := range points {
		tree.Insert(Box{X: p[0], Y: p[1], Width: 1, Height: 1})
	}
	if !tree.IsLeaf() {
		t.Fatal("tree should still be a leaf at capacity")
	}

	tree.Insert(Box{X: 70, Y: 70, Width: 1, Height: 1})
	if tree.IsLeaf() {
		t.Fatal("tree should subdivide past capacity")
	}
	if tree.Len() != 5 {
		t.Errorf("Len() = %d, want 5", tree.Len())
	}
	if tree.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", tree.Depth())
	}

	counts := map[string]int{}
	tree.Walk(func(n Node) bool {
		if n.Leaf {
			counts[n.Path] = len(n.Boxes)
		}
		return true
	})
	want := map[string]int{"NW": 1, "NE": 1, "SW": 1, "SE": 2}
	for path, n := range want {
		if counts[path] != n {
			t.Errorf("leaf %s holds %d boxes, want %d", path, counts[path], n)
		}
	}
}

func TestNodeInvariant(t *testing.T) {
	tree := New(Box{Width: 512, Height: 512})
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		tree.Insert(Box{X: float64(rng.IntN(512)), Y: float64(rng.IntN(512)), Width: 8, Height: 8})
	}

	tree.Walk(func(n Node) bool {
		if n.Leaf && len(n.Boxes) > Capacity {
			t.Errorf("leaf %q holds %d boxes, capacity %d", n.Path, len(n.Boxes), Capacity)
		}
		if !n.Leaf && n.Boxes != nil {
			t.Errorf("internal node %q holds boxes", n.Path)
		}
		for _, b := range n.Boxes {
			if !n.Bounds.ContainsPoint(b.X, b.Y) {
				t.Errorf("leaf %q holds box %+v outside its bounds", n.Path, b)
			}
		}
		return true
	})
}

func TestCoincidentPointsTerminate(t *testing.T) {
	tree := New(Box{Width: 100, Height: 100})
	for i := 0; i < 10; i++ {
		if !tree.Insert(Box{X: 50, Y: 50, Width: 4, Height: 4}) {
			t.Fatalf("Insert() #%d rejected a coincident point", i)
		}
	}
	if tree.Len() != 10 {
		t.Errorf("Len() = %d, want 10", tree.Len())
	}
	if tree.Depth() > MaxDepth {
		t.Errorf("Depth() = %d, exceeds MaxDepth %d", tree.Depth(), MaxDepth)
	}
	tree.Walk(func(n Node) bool {
		if len(n.Boxes) > Capacity && n.Depth != MaxDepth {
			t.Errorf("leaf %q at depth %d holds %d boxes above capacity", n.Path, n.Depth, len(n.Boxes))
		}
		return true
	})
}

func TestQueryMatchesLinearScan(t *testing.T) {
	bounds := Box{Width: 1024, Height: 1024}
	rng := rand.New(rand.NewPCG(42, 7))

	for round := 0; round < 20; round++ {
		tree := New(bounds)
		var inserted []Box
		n := 1 + rng.IntN(300)
		for i := 0; i < n; i++ {
			b := Box{
				X:      float64(rng.IntN(1024)),
				Y:      float64(rng.IntN(1024)),
				Width:  float64(1 + rng.IntN(64)),
				Height: float64(1 + rng.IntN(32)),
			}
			if tree.Insert(b) {
				inserted = append(inserted, b)
			}
		}
		if len(inserted) != n {
			t.Fatalf("round %d: inserted %d of %d in-bounds boxes", round, len(inserted), n)
		}

		for q := 0; q < 25; q++ {
			r := Box{
				X:      float64(rng.IntN(1100) - 50),
				Y:      float64(rng.IntN(1100) - 50),
				Width:  float64(rng.IntN(400)),
				Height: float64(rng.IntN(400)),
			}
			var want []Box
			for _, b := range inserted {
				if r.ContainsPoint(b.X, b.Y) {
					want = append(want, b)
				}
			}
			got := tree.Query(r)
			if !sameBoxes(got, want) {
				t.Fatalf("round %d: Query(%+v) returned %d boxes, linear scan %d", round, r, len(got), len(want))
			}
		}
	}
}

func TestQueryNoOverlap(t *testing.T) {
	tree := New(Box{Width: 100, Height: 100})
	tree.Insert(Box{X: 10, Y: 10, Width: 5, Height: 5})
	if got := tree.Query(Box{X: 200, Y: 200, Width: 50, Height: 50}); len(got) != 0 {
		t.Errorf("Query() outside bounds = %v, want empty", got)
	}
}

func TestQueryOrderIsDeterministic(t *testing.T) {
	build := func() *Tree {
		tree := New(Box{Width: 256, Height: 256})
		rng := rand.New(rand.NewPCG(9, 9))
		for i := 0; i < 200; i++ {
			tree.Insert(Box{X: float64(rng.IntN(256)), Y: float64(rng.IntN(256)), Width: 3, Height: 3})
		}
		return tree
	}
	r := Box{X: 30, Y: 30, Width: 180, Height: 180}
	a, b := build().Query(r), build().Query(r)
	if !slices.Equal(a, b) {
		t.Error("Query() order differs between identical trees")
	}
}

func TestQueryQuadrantOrder(t *testing.T) {
	tree := New(Box{Width: 100, Height: 100})
	// Inserted in reverse quadrant order; a full-range query must return NW first.
	for _, p := range [][2]float64{{75, 75}, {25, 75}, {75, 25}, {25, 25}, {80, 80}} {
		tree.Insert(Box{X: p[0], Y: p[1], Width: 1, Height: 1})
	}
	got := tree.Query(tree.Bounds())
	if len(got) != 5 {
		t.Fatalf("Query() returned %d boxes, want 5", len(got))
	}
	wantFirst := [][2]float64{{25, 25}, {75, 25}, {25, 75}}
	for i, p := range wantFirst {
		if got[i].X != p[0] || got[i].Y != p[1] {
			t.Errorf("result[%d] = (%v, %v), want (%v, %v)", i, got[i].X, got[i].Y, p[0], p[1])
		}
	}
}

func TestToDOT(t *testing.T) {
	tree := New(Box{Width: 100, Height: 100})
	for _, p := range [][2]float64{{10, 10}, {60, 10}, {10, 60}, {60, 60}, {70, 70}} {
		tree.Insert(Box{X: p[0], Y: p[1], Width: 1, Height: 1})
	}

	dot := tree.ToDOT()
	if !strings.HasPrefix(dot, "digraph QuadTree {") {
		t.Error("ToDOT() should start with 'digraph QuadTree {'")
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Error("ToDOT() should end with '}'")
	}
	for _, want := range []string{"rankdir=TB", "NW", "SE", "n0 -> n1", "(70.0, 70.0)"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q", want)
		}
	}
}

func sameBoxes(a, b []Box) bool {
	if len(a) != len(b) {
		return false
	}
	cmp := func(x, y Box) int {
		switch {
		case x.X != y.X:
			return compareFloat(x.X, y.X)
		case x.Y != y.Y:
			return compareFloat(x.Y, y.Y)
		case x.Width != y.Width:
			return compareFloat(x.Width, y.Width)
		default:
			return compareFloat(x.Height, y.Height)
		}
	}
	a, b = slices.Clone(a), slices.Clone(b)
	slices.SortFunc(a, cmp)
	slices.SortFunc(b, cmp)
	return slices.Equal(a, b)
}

func compareFloat(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
