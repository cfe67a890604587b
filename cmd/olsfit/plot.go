package main

import (
	"image/color"

	"github.com/YuminosukeSato/olsgo/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePredictionPlot writes a scatter of predicted against actual targets with
// the identity line y = x. The image format follows the file extension.
func SavePredictionPlot(path string, actual, predicted []float64) error {
	if len(actual) != len(predicted) {
		return errors.NewDimensionError("SavePredictionPlot", len(actual), len(predicted), 0)
	}
	if len(actual) == 0 {
		return errors.NewModelError("SavePredictionPlot", "empty data", errors.ErrEmptyData)
	}

	pts := make(plotter.XYs, len(actual))
	for i := range actual {
		pts[i].X = actual[i]
		pts[i].Y = predicted[i]
	}

	p := plot.New()
	p.Title.Text = "OLS fit"
	p.X.Label.Text = "actual"
	p.Y.Label.Text = "predicted"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "build scatter")
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(2.5)

	identity := plotter.NewFunction(func(x float64) float64 { return x })
	identity.Color = color.Gray{Y: 96}
	identity.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(scatter, identity)
	p.Legend.Add("predictions", scatter)
	p.Legend.Add("y = x", identity)
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot to %s", path)
	}
	return nil
}
