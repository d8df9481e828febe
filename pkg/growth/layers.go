package growth

import "math"

// MaxListedLayers is the largest layer count Distribute is asked to list by
// the pipeline and the HTTP service.
const MaxListedLayers = 10000

// Layer is one cell of an inflation stack.
type Layer struct {
	Index      int     `json:"index"`      // 1-based, counted from the wall
	Height     float64 `json:"height"`     // cell height
	Cumulative float64 `json:"cumulative"` // distance from the wall to the top of this cell
}

// Distribute lists the cells produced by ratio g for req. Fractional layer
// counts are truncated; a request for 10.7 layers yields 10 cells.
func Distribute(req Request, g float64) []Layer {
	n := int(math.Floor(req.Layers))
	if n < 1 {
		return nil
	}

	layers := make([]Layer, n)
	height := req.FirstCellHeight
	total := 0.0
	for i := range layers {
		total += height
		layers[i] = Layer{Index: i + 1, Height: height, Cumulative: total}
		height *= g
	}
	return layers
}

// Summary condenses a layer distribution.
type Summary struct {
	Layers         int     `json:"layers"`
	FirstHeight    float64 `json:"first_height"`
	LastHeight     float64 `json:"last_height"`
	TotalHeight    float64 `json:"total_height"`
	ExpansionRatio float64 `json:"expansion_ratio"` // last height over first height
}

// Summarize reports the extremes and total of layers. The zero Summary is
// returned for an empty slice.
func Summarize(layers []Layer) Summary {
	if len(layers) == 0 {
		return Summary{}
	}
	first, last := layers[0], layers[len(layers)-1]
	return Summary{
		Layers:         len(layers),
		FirstHeight:    first.Height,
		LastHeight:     last.Height,
		TotalHeight:    last.Cumulative,
		ExpansionRatio: last.Height / first.Height,
	}
}

// SummarizeRatio returns Summarize(Distribute(req, g)) in closed form, without
// listing the cells. It stays cheap for any layer count.
func SummarizeRatio(req Request, g float64) Summary {
	n := math.Floor(req.Layers)
	if n < 1 {
		return Summary{}
	}
	last := req.FirstCellHeight * math.Pow(g, n-1)
	total := req.FirstCellHeight * n
	if g != 1 {
		total = stackHeight(g, Request{FirstCellHeight: req.FirstCellHeight, Layers: n})
	}
	return Summary{
		Layers:         int(math.Min(n, math.MaxInt32)),
		FirstHeight:    req.FirstCellHeight,
		LastHeight:     last,
		TotalHeight:    total,
		ExpansionRatio: last / req.FirstCellHeight,
	}
}
