package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Validate rejects inputs that Compute does not define behavior for:
// non-positive or non-finite viewport dimensions, empty label text, negative
// or non-finite weights, and duplicate texts. The returned error is an
// *errors.Error carrying the matching code.
func Validate(labels []Label, vp Viewport) error {
	if err := ValidateViewport(vp); err != nil {
		return err
	}
	seen := make(map[string]int, len(labels))
	for i, l := range labels {
		if strings.TrimSpace(l.Text) == "" {
			return errors.New(errors.ErrCodeInvalidLabel, "label %d has empty text", i)
		}
		if math.IsNaN(l.Weight) || math.IsInf(l.Weight, 0) {
			return errors.New(errors.ErrCodeInvalidWeight, "label %q has non-finite weight", l.Text)
		}
		if l.Weight < 0 {
			return errors.New(errors.ErrCodeInvalidWeight, "label %q has negative weight %g", l.Text, l.Weight)
		}
		if j, dup := seen[l.Text]; dup {
			return errors.New(errors.ErrCodeDuplicateLabel, "label %q appears at %d and %d", l.Text, j, i)
		}
		seen[l.Text] = i
	}
	return nil
}

// ValidateViewport rejects viewports with non-positive or non-finite
// dimensions.
func ValidateViewport(vp Viewport) error {
	if math.IsNaN(vp.Width) || math.IsNaN(vp.Height) || math.IsInf(vp.Width, 0) || math.IsInf(vp.Height, 0) {
		return errors.New(errors.ErrCodeInvalidViewport, "viewport dimensions must be finite")
	}
	if !vp.Valid() {
		return errors.New(errors.ErrCodeInvalidViewport, "viewport must be positive, got %gx%g", vp.Width, vp.Height)
	}
	return nil
}
