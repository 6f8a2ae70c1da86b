package styles

import (
	"bytes"
	"fmt"
)

const (
	SimpleName = "simple"

	simpleInk    = "#333333"
	simpleStroke = "#bbbbbb"
)

// Simple draws every label in one ink color with weight expressed only by
// size.
type Simple struct{}

func (Simple) Name() string { return SimpleName }

func (Simple) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>text.label { font-family: %s; }</style>\n", fontFamily)
}

func (Simple) RenderBox(buf *bytes.Buffer, l Label) {
	writeRect(buf, l, simpleStroke)
}

func (Simple) RenderLabel(buf *bytes.Buffer, l Label) {
	writeText(buf, l, simpleInk)
}
