// Package sink renders computed word-cloud layouts to output formats.
//
// # Formats
//
//   - [RenderSVG]: standalone SVG with hover highlighting and a click event
//   - [RenderJSON]: placements and viewport for caching and re-rendering
//   - [RenderPNG], [RenderPDF]: raster and print output via rsvg-convert
//
// # Interaction
//
// Interactive SVG output dims all other labels while one is hovered. A click
// dispatches a bubbling [ActivateEvent] CustomEvent on the <svg> root whose
// detail is {text: "..."}, and posts the same payload to the parent window
// when the SVG is embedded in an iframe. The script is omitted with
// [WithoutInteraction] and always for PNG and PDF.
//
// Sinks never modify the result and are safe to call concurrently.
package sink
