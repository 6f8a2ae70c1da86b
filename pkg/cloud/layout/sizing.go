package layout

import (
	"cmp"
	"math"
	"slices"
	"unicode/utf16"
)

const (
	// MinFontSize is the font size given to the lightest label.
	MinFontSize = 12.0
	// MaxFontSize is the font size given to the heaviest label.
	MaxFontSize = MinFontSize + 16

	// Padding is added to every side of a label's text box.
	Padding = 4.0

	charWidthRatio  = 0.6
	lineHeightRatio = 1.2
)

// FontSize maps weight linearly from [minWeight, maxWeight] onto
// [minFont, maxFont]. When the weight range is empty every label gets minFont.
func FontSize(weight, minWeight, maxWeight, minFont, maxFont float64) float64 {
	norm := 0.0
	if maxWeight != minWeight {
		norm = (weight - minWeight) / (maxWeight - minWeight)
	}
	return minFont + norm*(maxFont-minFont)
}

// WeightRange returns the smallest and largest weight in labels.
func WeightRange(labels []Label) (lo, hi float64) {
	if len(labels) == 0 {
		return 0, 0
	}
	lo, hi = labels[0].Weight, labels[0].Weight
	for _, l := range labels[1:] {
		lo = min(lo, l.Weight)
		hi = max(hi, l.Weight)
	}
	return lo, hi
}

// Order returns the indices of labels sorted by descending weight. Labels of
// equal weight keep their input order.
func Order(labels []Label) []int {
	idx := make([]int, len(labels))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(labels[b].Weight, labels[a].Weight)
	})
	return idx
}

// TextSize estimates the rendered extent of text at fontSize from its
// length in UTF-16 code units, so an emoji counts as two characters.
func TextSize(text string, fontSize float64) (w, h float64) {
	n := float64(len(utf16.Encode([]rune(text))))
	return math.Ceil(n * fontSize * charWidthRatio), math.Ceil(fontSize * lineHeightRatio)
}

// BoundingSize returns the text size grown by padding on every side.
func BoundingSize(text string, fontSize, padding float64) (w, h float64) {
	tw, th := TextSize(text, fontSize)
	return tw + 2*padding, th + 2*padding
}
