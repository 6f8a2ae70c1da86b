package quadtree

// Capacity is the number of boxes a leaf holds before it subdivides.
const Capacity = 4

// MaxDepth bounds subdivision. A leaf at this depth keeps accepting boxes past
// Capacity, so coincident reference points cannot split the tree forever.
const MaxDepth = 24

// Box is an axis-aligned rectangle. X and Y locate the top-left corner, the
// reference point used for every spatial predicate in this package. The box
// extends rightward and downward from it.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the box's right edge.
func (b Box) Right() float64 { return b.X + b.Width }

// Bottom returns the y coordinate of the box's bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.Height }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return b.Y + b.Height/2 }

// ContainsPoint reports whether (x, y) lies in the half-open rectangle
// [X, X+Width) × [Y, Y+Height).
func (b Box) ContainsPoint(x, y float64) bool {
	return x >= b.X && x < b.Right() && y >= b.Y && y < b.Bottom()
}

// Intersects reports whether b and o overlap on both axes. Touching edges
// count as overlap so a query never misses a point sitting on a shared edge.
func (b Box) Intersects(o Box) bool {
	return !(o.X > b.Right() || o.Right() < b.X || o.Y > b.Bottom() || o.Bottom() < b.Y)
}

// Overlaps reports whether b and o share interior area. Unlike Intersects,
// boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.Right() && o.X < b.Right() && b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Quadrant identifies a child of an internal node.
type Quadrant int

// Quadrants in scan order. Redistribution, insertion and query results all
// follow this order.
const (
	NW Quadrant = iota
	NE
	SW
	SE
)

func (q Quadrant) String() string {
	switch q {
	case NW:
		return "NW"
	case NE:
		return "NE"
	case SW:
		return "SW"
	case SE:
		return "SE"
	}
	return "root"
}

// Tree is a point-region quadtree over boxes keyed by their reference point.
//
// A Tree is a leaf holding at most Capacity boxes, or an internal node holding
// no boxes and exactly four children that partition its bounds. The one
// exception is a leaf at MaxDepth, which never splits and so may hold more
// than Capacity boxes. Subdivision is one-way. A Tree is not safe for concurrent use; each layout call owns its
// own.
type Tree struct {
	bounds   Box
	depth    int
	boxes    []Box
	children *[4]*Tree
}

// New returns an empty tree covering bounds.
func New(bounds Box) *Tree {
	return newNode(bounds, 0)
}

func newNode(bounds Box, depth int) *Tree {
	return &Tree{bounds: bounds, depth: depth, boxes: make([]Box, 0, Capacity)}
}

// Bounds returns the region covered by the tree.
func (t *Tree) Bounds() Box { return t.bounds }

// IsLeaf reports whether the node stores boxes directly.
func (t *Tree) IsLeaf() bool { return t.children == nil }

// Insert stores b. It returns false when b's reference point lies outside the
// tree's bounds, or when no child accepts it after subdivision.
func (t *Tree) Insert(b Box) bool {
	if !t.bounds.ContainsPoint(b.X, b.Y) {
		return false
	}
	if t.children == nil {
		if len(t.boxes) < Capacity || t.depth >= MaxDepth {
			t.boxes = append(t.boxes, b)
			return true
		}
		t.subdivide()
	}
	for _, c := range t.children {
		if c.Insert(b) {
			return true
		}
	}
	return false
}

func (t *Tree) subdivide() {
	hw, hh := t.bounds.Width/2, t.bounds.Height/2
	x, y, d := t.bounds.X, t.bounds.Y, t.depth+1
	t.children = &[4]*Tree{
		NW: newNode(Box{X: x, Y: y, Width: hw, Height: hh}, d),
		NE: newNode(Box{X: x + hw, Y: y, Width: hw, Height: hh}, d),
		SW: newNode(Box{X: x, Y: y + hh, Width: hw, Height: hh}, d),
		SE: newNode(Box{X: x + hw, Y: y + hh, Width: hw, Height: hh}, d),
	}

	// Boxes that match no child (float rounding at the split line) are dropped.
	held := t.boxes
	t.boxes = nil
	for _, b := range held {
		for _, c := range t.children {
			if c.Insert(b) {
				break
			}
		}
	}
}

// Query returns every stored box whose reference point lies in r. Results
// are concatenated per quadrant in NW, NE, SW, SE order, so repeated runs over
// the same insertions return the same sequence.
func (t *Tree) Query(r Box) []Box {
	return t.query(r, nil)
}

func (t *Tree) query(r Box, found []Box) []Box {
	if !t.bounds.Intersects(r) {
		return found
	}
	if t.children == nil {
		for _, b := range t.boxes {
			if r.ContainsPoint(b.X, b.Y) {
				found = append(found, b)
			}
		}
		return found
	}
	for _, c := range t.children {
		found = c.query(r, found)
	}
	return found
}

// Len returns the number of boxes stored in the tree.
func (t *Tree) Len() int {
	if t.children == nil {
		return len(t.boxes)
	}
	n := 0
	for _, c := range t.children {
		n += c.Len()
	}
	return n
}

// Depth returns the number of levels below t; a lone leaf has depth 0.
func (t *Tree) Depth() int {
	if t.children == nil {
		return 0
	}
	d := 0
	for _, c := range t.children {
		d = max(d, c.Depth())
	}
	return d + 1
}

// Node is the view of a tree node handed to Walk callbacks.
type Node struct {
	Path     string // quadrant path from the root, e.g. "NW.SE"; empty for the root
	Depth    int
	Quadrant Quadrant // -1 for the root
	Bounds   Box
	Boxes    []Box // nil for internal nodes
	Leaf     bool
}

// Walk visits every node depth-first in quadrant order, parents before
// children. Returning false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(Node) bool) {
	t.walk("", 0, -1, fn)
}

func (t *Tree) walk(path string, depth int, q Quadrant, fn func(Node) bool) {
	n := Node{Path: path, Depth: depth, Quadrant: q, Bounds: t.bounds, Leaf: t.children == nil}
	if n.Leaf {
		n.Boxes = t.boxes
	}
	if !fn(n) || n.Leaf {
		return
	}
	for i, c := range t.children {
		cq := Quadrant(i)
		p := cq.String()
		if path != "" {
			p = path + "." + p
		}
		c.walk(p, depth+1, cq, fn)
	}
}
