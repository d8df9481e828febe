package growth_test

import (
	"fmt"

	"github.com/matzehuels/inflate/pkg/errors"
	"github.com/matzehuels/inflate/pkg/growth"
)

func ExampleSolve() {
	// 10 layers starting at 1 mm must fill a 50 mm boundary layer.
	req := growth.Request{FirstCellHeight: 0.001, Layers: 10, TotalHeight: 0.05}

	res, err := growth.Solve(req, growth.DefaultOptions())
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("ratio: %.4f\n", res.GrowthRatio)
	fmt.Println("iterations:", res.Iterations)
	fmt.Println("converged:", res.Converged)
	// Output:
	// ratio: 1.3322
	// iterations: 20
	// converged: true
}

func ExampleSolve_bracketingFailed() {
	// A three-layer stack cannot grow from 1 µm to 1 km with a ratio below 100.
	req := growth.Request{FirstCellHeight: 1e-6, Layers: 3, TotalHeight: 1e3}

	_, err := growth.Solve(req, growth.Options{})
	fmt.Println(errors.GetCode(err))
	// Output:
	// BRACKETING_FAILED
}

func ExampleDistribute() {
	layers := growth.Distribute(growth.Request{FirstCellHeight: 1, Layers: 4}, 2)
	for _, l := range layers {
		fmt.Printf("%d: %.0f (%.0f)\n", l.Index, l.Height, l.Cumulative)
	}
	// Output:
	// 1: 1 (1)
	// 2: 2 (3)
	// 3: 4 (7)
	// 4: 8 (15)
}
