package layout

import (
	"math"
	"math/rand/v2"
	"unicode/utf16"
)

const (
	// Iterations is the number of spiral steps tried per label.
	Iterations = 100

	// RadiusStep is the spiral's radius growth per step, as a fraction of the
	// viewport's smaller dimension.
	RadiusStep = 0.02

	// EdgeMargin is the distance every non-degraded box keeps from the
	// viewport edges.
	EdgeMargin = 4.0

	// RepulsionForce is the peak displacement a single neighbor applies.
	RepulsionForce = 150.0

	// repulsionRange is the distance beyond which neighbors exert no force.
	repulsionRange = 1.5 * RepulsionForce

	// Neighbors closer than nearRatio·min(W, H) push 20% harder.
	nearRatio = 0.5
	nearBoost = 1.2

	// seedStride separates the seeds of labels with equal character sums.
	seedStride = 100
)

// goldenAngle is the angular spiral step, 2π/φ.
var goldenAngle = 2 * math.Pi / math.Phi

// Seed derives the deterministic search seed for a label from the sum of its
// UTF-16 code units and its placement index. Characters outside the Basic
// Multilingual Plane contribute both surrogate halves.
func Seed(text string, order int) uint64 {
	var sum uint64
	for _, u := range utf16.Encode([]rune(text)) {
		sum += uint64(u)
	}
	return sum + uint64(order)*seedStride
}

// search walks the spiral for a w×h box and returns the lowest-collision
// candidate found, or false if every candidate was rejected. The radius and
// angle advance before each candidate, so the first one already sits one
// step out from the center.
func (e *engine) search(w, h float64, rng *rand.Rand) (Box, int, bool) {
	cx, cy := e.vp.Width/2, e.vp.Height/2
	step := RadiusStep * min(e.vp.Width, e.vp.Height)
	start := rng.Float64() * 2 * math.Pi

	var best Box
	bestHits := -1
	for i := 1; i <= e.cfg.iterations; i++ {
		r := float64(i) * step
		theta := start + float64(i)*goldenAngle
		px, py := cx+r*math.Cos(theta), cy+r*math.Sin(theta)
		if !e.fits(px, py, w, h) {
			continue
		}

		dx, dy := e.repulsion(px, py)
		px, py = px+dx, py+dy
		if !e.fits(px, py, w, h) {
			continue
		}

		box := centered(px, py, w, h)
		hits := e.collisions(box)
		if bestHits < 0 || hits < bestHits {
			best, bestHits = box, hits
		}
		if hits == 0 {
			break
		}
	}
	return best, bestHits, bestHits >= 0
}

// fits reports whether a w×h box centered on (px, py) keeps EdgeMargin from
// every viewport edge.
func (e *engine) fits(px, py, w, h float64) bool {
	x, y := px-w/2, py-h/2
	return x >= EdgeMargin && y >= EdgeMargin &&
		x+w <= e.vp.Width-EdgeMargin && y+h <= e.vp.Height-EdgeMargin
}

// repulsion sums the push every placed box within repulsionRange applies to
// the point (px, py). A neighbor centered exactly on the point has no
// direction and exerts no force.
func (e *engine) repulsion(px, py float64) (float64, float64) {
	if e.indexed == 0 {
		return 0, 0
	}

	// A box's center is at most maxW/maxH right of and below its reference
	// point, so this range covers every center within repulsionRange.
	area := Box{
		X:      px - repulsionRange - e.maxW,
		Y:      py - repulsionRange - e.maxH,
		Width:  2*repulsionRange + e.maxW,
		Height: 2*repulsionRange + e.maxH,
	}
	near := nearRatio * min(e.vp.Width, e.vp.Height)

	var fx, fy float64
	for _, b := range e.index.Query(area) {
		vx, vy := px-b.CenterX(), py-b.CenterY()
		d := math.Hypot(vx, vy)
		if d == 0 || d >= repulsionRange {
			continue
		}
		force := RepulsionForce * math.Pow(1-d/repulsionRange, 1.5)
		if d < near {
			force *= nearBoost
		}
		fx += vx / d * force
		fy += vy / d * force
	}
	return fx, fy
}

// collisions counts the placed boxes whose reference point lies inside box.
// A neighbor that overlaps box with its corner outside it is not counted.
func (e *engine) collisions(box Box) int {
	return len(e.index.Query(box))
}

func centered(px, py, w, h float64) Box {
	return Box{X: px - w/2, Y: py - h/2, Width: w, Height: h}
}
