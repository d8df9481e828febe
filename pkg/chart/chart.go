// Package chart draws growth ratio solves with gonum/plot.
//
// Two charts are available:
//
//   - [ResidualCurve] plots the residual over the bracket that contained the
//     root and marks the solved ratio.
//   - [LayerHeights] plots the height of every layer as bars.
//
// Charts are written with [Save]; the output format follows the file
// extension (.png, .svg or .pdf).
package chart

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/inflate/pkg/errors"
	"github.com/matzehuels/inflate/pkg/growth"
)

// Chart kinds accepted by the CLI.
const (
	KindResidual = "residual"
	KindLayers   = "layers"
)

// ValidKinds is the set of supported chart kinds.
var ValidKinds = map[string]bool{
	KindResidual: true,
	KindLayers:   true,
}

// Default chart geometry.
const (
	DefaultWidth   = 6 * vg.Inch
	DefaultHeight  = 4 * vg.Inch
	DefaultSamples = 200
)

// maxLabels is the number of layer labels shown before they are thinned out.
const maxLabels = 20

var (
	rootColor = color.RGBA{R: 0xd9, G: 0x2d, B: 0x20, A: 0xff}
	barColor  = color.RGBA{R: 0x2b, G: 0x6c, B: 0xb0, A: 0xff}
	axisColor = color.Gray{Y: 0x80}
)

// ValidateKind checks that kind names a supported chart.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid chart kind: %q (must be one of: residual, layers)", kind)
	}
	return nil
}

// ValidateFormat checks that path has an extension Save can write.
func ValidateFormat(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".svg", ".pdf":
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported chart file %q (use .png, .svg or .pdf)", path)
	}
}

// ResidualCurve plots the residual of req between the bracket lower bound and
// the upper end reached by the expansion that produced res. Points where the
// residual is undefined or not finite are skipped.
func ResidualCurve(req growth.Request, res growth.Result, samples int) (*plot.Plot, error) {
	if samples < 2 {
		samples = DefaultSamples
	}
	lo := growth.LowerBound
	hi := growth.InitialUpperBound + float64(res.Expansions)*growth.BracketStep

	pts := make(plotter.XYs, 0, samples)
	step := (hi - lo) / float64(samples-1)
	for i := 0; i < samples; i++ {
		x := lo + float64(i)*step
		if i == samples-1 {
			x = hi
		}
		y, err := growth.Residual(x, req)
		if err != nil || math.IsInf(y, 0) || math.IsNaN(y) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	if len(pts) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "residual is not finite on [%g, %g]", lo, hi)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Residual, %g layers from %g to %g", req.Layers, req.FirstCellHeight, req.TotalHeight)
	p.X.Label.Text = "growth ratio G"
	p.Y.Label.Text = "stack height - total"
	p.Add(plotter.NewGrid())

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = axisColor
	zero.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zero)

	if err := plotutil.AddLines(p, "residual", pts); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "draw residual curve")
	}

	root, err := plotter.NewScatter(plotter.XYs{{X: res.GrowthRatio, Y: res.Residual}})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "draw root marker")
	}
	root.GlyphStyle.Shape = draw.CircleGlyph{}
	root.GlyphStyle.Radius = vg.Points(4)
	root.GlyphStyle.Color = rootColor
	p.Add(root)
	p.Legend.Add(fmt.Sprintf("G = %.6f", res.GrowthRatio), root)
	p.Legend.Top = true

	return p, nil
}

// LayerHeights plots one bar per layer.
func LayerHeights(layers []growth.Layer) (*plot.Plot, error) {
	if len(layers) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no layers to plot")
	}

	heights := make(plotter.Values, len(layers))
	for i, l := range layers {
		heights[i] = l.Height
	}

	bars, err := plotter.NewBarChart(heights, vg.Points(barWidth(len(layers))))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "draw layer bars")
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Layer heights, %d layers", len(layers))
	p.X.Label.Text = "layer"
	p.Y.Label.Text = "height"
	p.Add(plotter.NewGrid(), bars)
	p.NominalX(layerLabels(len(layers))...)

	return p, nil
}

// Save writes p to path in the format given by its extension.
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	if err := ValidateFormat(path); err != nil {
		return err
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if err := p.Save(width, height, path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save chart %s", path)
	}
	return nil
}

func barWidth(n int) float64 {
	w := 360.0 / float64(n)
	return math.Max(1, math.Min(w, 24))
}

// layerLabels numbers the bars, leaving gaps once there are too many to read.
func layerLabels(n int) []string {
	every := 1
	if n > maxLabels {
		every = int(math.Ceil(float64(n) / maxLabels))
	}
	labels := make([]string, n)
	for i := range labels {
		if i%every == 0 || i == n-1 {
			labels[i] = fmt.Sprint(i + 1)
		}
	}
	return labels
}
