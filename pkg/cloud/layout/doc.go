// Package layout computes word-cloud placements.
//
// # Overview
//
// [Compute] takes weighted labels and a viewport and returns a [Result] with
// one [Placement] per label: a font size scaled by weight and a bounding box
// positioned so that labels overlap as little as possible. The engine only
// produces geometry; rendering lives in the sink package.
//
//	res := layout.Compute([]layout.Label{
//	    {Text: "alpha", Weight: 10},
//	    {Text: "beta", Weight: 1},
//	}, layout.Viewport{Width: 500, Height: 500})
//
//	for _, p := range res.Placements {
//	    fmt.Println(p.Text, p.FontSize, p.Box)
//	}
//
// # Algorithm
//
//  1. Sizing: weights map linearly onto [MinFontSize, MaxFontSize]. Equal
//     weights all get MinFontSize.
//  2. Ordering: heaviest first, ties in input order ([Order]).
//  3. Box estimation: width is 0.6·fontSize per character, height
//     1.2·fontSize, both rounded up, plus [Padding] on each side.
//  4. Search: a golden-angle spiral from the viewport center, [Iterations]
//     steps, radius growing by [RadiusStep] of the smaller viewport side
//     before each candidate. The starting angle comes from a PRNG seeded with
//     [Seed]. Candidates must keep [EdgeMargin] from every edge, are pushed
//     away from placed boxes within range, re-checked, then scored by the
//     number of placed reference points inside them, found with one quadtree
//     query.
//  5. Fallback: no surviving candidate places the label at the center with
//     Collisions set to [Unresolved]. Fallback boxes are not indexed.
//
// # Determinism
//
// There is no system randomness. Identical labels in identical order with an
// identical viewport produce bit-identical results, which is what makes
// layouts cacheable by input hash.
//
// # Validation
//
// Compute never fails. [Validate] reports the inputs whose behavior is
// undefined (non-positive viewport, negative or NaN weights, empty or
// duplicate text) so callers can reject them first.
package layout
