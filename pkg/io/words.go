package io

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
)

// CountOptions controls how free text is turned into labels.
type CountOptions struct {
	// MinLength drops words shorter than this many characters. Zero uses
	// DefaultMinLength.
	MinLength int
	// Top keeps only the most frequent words. Zero keeps all.
	Top int
	// StopWords replaces DefaultStopWords when non-nil. Entries are compared
	// after case folding.
	StopWords []string
	// KeepCase counts "Go" and "go" separately.
	KeepCase bool
	// Language selects the casing rules. The zero value is language.Und.
	Language language.Tag
}

// DefaultMinLength is the shortest word counted by default.
const DefaultMinLength = 3

// DefaultStopWords are common English function words that carry no topic.
var DefaultStopWords = []string{
	"about", "after", "all", "also", "and", "any", "are", "because", "been",
	"but", "can", "could", "did", "does", "for", "from", "had", "has", "have",
	"her", "his", "how", "into", "its", "just", "more", "not", "now", "one",
	"only", "other", "our", "out", "over", "she", "some", "such", "than",
	"that", "the", "their", "them", "then", "there", "these", "they", "this",
	"those", "was", "were", "what", "when", "which", "who", "will", "with",
	"would", "you", "your",
}

// CountWords splits text into words on Unicode word boundaries and returns
// one label per distinct word, weighted by its count. Labels are ordered by
// descending count, ties by first appearance, so the output is stable.
//
// Segments without a letter or digit (punctuation, spaces) are skipped.
// Words are lower-cased with the rules of opts.Language unless KeepCase is
// set.
func CountWords(text string, opts CountOptions) []layout.Label {
	minLen := opts.MinLength
	if minLen <= 0 {
		minLen = DefaultMinLength
	}
	lower := cases.Lower(opts.Language)

	stop := opts.StopWords
	if stop == nil {
		stop = DefaultStopWords
	}
	stopSet := make(map[string]struct{}, len(stop))
	for _, w := range stop {
		stopSet[lower.String(w)] = struct{}{}
	}

	counts := make(map[string]int)
	var order []string
	state := -1
	for len(text) > 0 {
		var word string
		word, text, state = uniseg.FirstWordInString(text, state)
		if !isWord(word) || utf8.RuneCountInString(word) < minLen {
			continue
		}
		folded := lower.String(word)
		if _, skip := stopSet[folded]; skip {
			continue
		}
		w := folded
		if opts.KeepCase {
			w = word
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	// order is in first-appearance order; a stable sort keeps it for ties.
	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})
	if opts.Top > 0 && len(order) > opts.Top {
		order = order[:opts.Top]
	}

	labels := make([]layout.Label, len(order))
	for i, w := range order {
		labels[i] = layout.Label{Text: w, Weight: float64(counts[w])}
	}
	return labels
}

func isWord(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	}) >= 0
}
