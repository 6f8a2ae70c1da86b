package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/observability"
)

// ComputeLayout validates opts and places opts.Labels. The engine itself
// cannot be interrupted; ctx is only checked before it starts.
func ComputeLayout(ctx context.Context, opts Options) (layout.Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return layout.Result{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(opts.Labels))
	start := time.Now()

	res := layout.Compute(opts.Labels, opts.Viewport(), opts.LayoutOptions()...)

	hooks.OnLayoutComplete(ctx, res.Len(), res.DegradedCount(), time.Since(start), nil)
	return res, nil
}
