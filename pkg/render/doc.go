// Package render provides output conversion shared by the word-cloud sinks
// and the quadtree debug renderer.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). A missing tool is reported
// as an UNSUPPORTED error so callers can fall back to SVG.
//
//	svg := sink.RenderSVG(res)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [NormalizeViewBox] rewrites Graphviz output to a zero-origin viewBox.
package render
