// Package quadtree provides the spatial index used by the word-cloud layout
// engine.
//
// # Overview
//
// A [Tree] stores label bounding boxes keyed by their reference point, the
// top-left corner. Each node is either a leaf holding up to [Capacity] boxes or
// an internal node with four children (NW, NE, SW, SE) that split its bounds in
// half on both axes. Subdivision happens when a fifth box lands in a full leaf
// and is never undone.
//
//	t := quadtree.New(quadtree.Box{Width: 800, Height: 600})
//	t.Insert(quadtree.Box{X: 10, Y: 20, Width: 40, Height: 16})
//	hits := t.Query(quadtree.Box{X: 0, Y: 0, Width: 100, Height: 100})
//
// # Semantics
//
// Containment is half-open: a point (x, y) is inside a box when
// x ∈ [X, X+Width) and y ∈ [Y, Y+Height). [Tree.Insert] rejects boxes whose
// reference point falls outside the tree. [Tree.Query] returns the boxes whose
// reference point falls inside the query range, in NW, NE, SW, SE order, which
// keeps layout runs reproducible.
//
// There is no delete or update. A tree is built for one layout call and then
// discarded.
//
// # Debugging
//
// [Tree.ToDOT] writes the node structure as Graphviz DOT and [Tree.RenderSVG]
// renders it, which the CLI exposes as "wordcloud quadtree".
package quadtree
