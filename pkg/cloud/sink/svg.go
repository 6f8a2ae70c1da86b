package sink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/cloud/styles"
)

// ActivateEvent is the DOM event dispatched when a label is clicked. Its
// detail carries the label text.
const ActivateEvent = "wordcloud:activate"

const labelInteractionCSS = `
    .label { cursor: pointer; transition: opacity 0.2s ease; }
    svg.hovering .label { opacity: 0.35; }
    svg.hovering .label.highlight { opacity: 1; }
    .label-box { pointer-events: none; }`

const labelInteractionJS = `
    (function() {
      const root = document.currentScript ? document.currentScript.closest('svg') : document.querySelector('svg');
      root.querySelectorAll('.label').forEach(el => {
        el.addEventListener('mouseenter', () => { root.classList.add('hovering'); el.classList.add('highlight'); });
        el.addEventListener('mouseleave', () => { root.classList.remove('hovering'); el.classList.remove('highlight'); });
        el.addEventListener('click', () => {
          const detail = { text: el.dataset.text };
          root.dispatchEvent(new CustomEvent('` + ActivateEvent + `', { detail: detail, bubbles: true }));
          if (window.parent && window.parent !== window) {
            window.parent.postMessage({ type: '` + ActivateEvent + `', text: detail.text }, '*');
          }
        });
      });
    })();`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	boxes       bool
	interactive bool
	background  string
}

// WithStyle sets the visual style. The default is [styles.Simple].
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithBoxes outlines every label's padded box, dashed for degraded labels.
func WithBoxes() SVGOption { return func(r *svgRenderer) { r.boxes = true } }

// WithoutInteraction omits the hover and click script, for static exports.
func WithoutInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = false } }

// WithBackground fills the viewport with color before drawing labels.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// RenderSVG draws a layout result as a standalone SVG document, one <text>
// element per placement in placement order.
func RenderSVG(res layout.Result, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}, interactive: true}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := res.Viewport.Width, res.Viewport.Height
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)

	r.style.RenderDefs(&buf)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			w, h, styles.EscapeXML(r.background))
	}

	labels := buildLabels(res)
	if r.boxes {
		for _, l := range labels {
			r.style.RenderBox(&buf, l)
		}
	}
	for _, l := range labels {
		r.style.RenderLabel(&buf, l)
	}
	if r.interactive {
		renderLabelInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLabelInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", labelInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", labelInteractionJS)
}

func buildLabels(res layout.Result) []styles.Label {
	lo, hi := weightRange(res.Placements)
	labels := make([]styles.Label, 0, len(res.Placements))
	for _, p := range res.Placements {
		labels = append(labels, styles.Label{
			ID:       strconv.Itoa(p.Order),
			Text:     p.Text,
			Weight:   p.Weight,
			Norm:     layout.FontSize(p.Weight, lo, hi, 0, 1),
			FontSize: p.FontSize,
			X:        p.Box.X, Y: p.Box.Y,
			W: p.Box.Width, H: p.Box.Height,
			CX: p.Box.CenterX(), CY: p.Box.CenterY(),
			Degraded: p.Degraded,
		})
	}
	return labels
}

func weightRange(ps []layout.Placement) (lo, hi float64) {
	for i, p := range ps {
		if i == 0 || p.Weight < lo {
			lo = p.Weight
		}
		if i == 0 || p.Weight > hi {
			hi = p.Weight
		}
	}
	return lo, hi
}
