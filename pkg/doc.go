// Package pkg provides the libraries behind the wordcloud command.
//
// # Overview
//
// A word cloud places weighted text labels inside a rectangular viewport so
// that heavier labels are drawn larger and no two labels overlap. Placement
// is deterministic: the same labels and viewport always produce the same
// layout. The pkg directory is organized into three areas:
//
//  1. [cloud] - Domain logic (spatial index, layout, styles, sinks)
//  2. [pipeline] - Orchestration (validate → layout → render)
//  3. Infrastructure ([cache], [io], [errors], [observability], [render])
//
// # Architecture
//
// The data flow through a run:
//
//	Label file or free text
//	         ↓
//	    [io] package (decode, count words)
//	         ↓
//	    [cloud/layout] package (size labels, spiral search over a quadtree)
//	         ↓
//	    [cloud/sink] package (SVG, JSON, PNG, PDF)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/wordcloud/pkg/cloud/layout"
//	    "github.com/matzehuels/wordcloud/pkg/cloud/sink"
//	)
//
//	labels := []layout.Label{{Text: "go", Weight: 12}, {Text: "rust", Weight: 7}}
//	res := layout.Compute(labels, layout.Viewport{Width: 800, Height: 600})
//	svg := sink.RenderSVG(res)
//
// # Main Packages
//
// [cloud/quadtree] - Point-region quadtree keyed by each box's top-left
// corner. Leaves hold up to four boxes and split into NW, NE, SW, SE.
//
// [cloud/layout] - Weight-to-size mapping, text measurement and the
// Archimedean spiral search that places labels largest first.
//
// [cloud/styles] - Visual styles (simple, palette).
//
// [cloud/sink] - Output formats. JSON round-trips through [io].
//
// [pipeline] - The layout and render stages shared by the CLI and the HTTP
// server, with content-addressed caching through [cache].
//
// [cache] - File, Redis and null cache backends behind one interface.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/cloud/...              # Domain packages
//	go test -run Example                 # Examples only
//
// [cloud]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cloud
// [cloud/quadtree]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cloud/quadtree
// [cloud/layout]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cloud/layout
// [cloud/styles]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cloud/styles
// [cloud/sink]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cloud/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/observability
// [render]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/render
package pkg
