package layout_test

import (
	"fmt"
	"math"

	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
)

func ExampleCompute() {
	res := layout.Compute([]layout.Label{
		{Text: "alpha", Weight: 10},
		{Text: "beta", Weight: 1},
	}, layout.Viewport{Width: 500, Height: 500})

	for _, p := range res.Placements {
		fmt.Printf("%s size=%.0f collisions=%d\n", p.Text, p.FontSize, p.Collisions)
	}
	alpha, _ := res.Lookup("alpha")
	offset := math.Hypot(alpha.Box.CenterX()-250, alpha.Box.CenterY()-250)
	fmt.Printf("alpha %vx%v, %.0f from center\n", alpha.Box.Width, alpha.Box.Height, offset)
	// Output:
	// alpha size=28 collisions=0
	// beta size=12 collisions=0
	// alpha 92x42, 10 from center
}

func ExampleValidate() {
	err := layout.Validate([]layout.Label{
		{Text: "go", Weight: 3},
		{Text: "go", Weight: 1},
	}, layout.Viewport{Width: 100, Height: 100})
	fmt.Println(err)
	// Output: DUPLICATE_LABEL: label "go" appears at 0 and 1
}

func ExampleOrder() {
	labels := []layout.Label{
		{Text: "c", Weight: 1},
		{Text: "a", Weight: 5},
		{Text: "b", Weight: 5},
	}
	for _, i := range layout.Order(labels) {
		fmt.Print(labels[i].Text, " ")
	}
	fmt.Println()
	// Output: a b c
}
