package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const fontFamily = `"Helvetica Neue", Helvetica, Arial, sans-serif`

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// writeText writes a <text> element centered on the label's box.
func writeText(buf *bytes.Buffer, l Label, fill string) {
	fmt.Fprintf(buf, `  <text id="label-%s" class="label" data-text="%s" x="%.2f" y="%.2f" font-size="%.2f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		l.ID, EscapeXML(l.Text), l.CX, l.CY, l.FontSize, fill, EscapeXML(l.Text))
}

func writeRect(buf *bytes.Buffer, l Label, stroke string) {
	dash := ""
	if l.Degraded {
		dash = ` stroke-dasharray="3,2"`
	}
	fmt.Fprintf(buf, `  <rect class="label-box" data-text="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="0.5"%s/>`+"\n",
		EscapeXML(l.Text), l.X, l.Y, l.W, l.H, stroke, dash)
}
