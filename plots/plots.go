/*
Package plots renders parity and grid search diagnostic plots
*/
package plots

import (
	"image/color"
	"math"

	"go-ml.dev/pkg/vacancy/fu"
	"golang.org/x/xerrors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	trainColor = color.RGBA{R: 31, G: 119, B: 180, A: 200}
	testColor  = color.RGBA{R: 255, G: 127, B: 14, A: 220}
	bestColor  = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

func xys(x, y []float64) plotter.XYs {
	r := make(plotter.XYs, len(x))
	for i := range x {
		r[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return r
}

/*
Parity plots predicted against calculated energies of both partitions
with the dashed y=x diagonal. Limits are padded by 0.5 eV
*/
func Parity(path string, trainActual, trainPredicted, testActual, testPredicted []float64) error {
	p := plot.New()
	p.X.Label.Text = "Calculated formation energy (eV)"
	p.Y.Label.Text = "Predicted formation energy (eV)"
	lo, hi := fu.Limits(0.5, trainActual, trainPredicted, testActual, testPredicted)

	diag, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return xerrors.Errorf("parity diagonal: %w", err)
	}
	diag.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(diag)

	for _, s := range []struct {
		name string
		x, y []float64
		c    color.Color
	}{
		{"train", trainActual, trainPredicted, trainColor},
		{"test", testActual, testPredicted, testColor},
	} {
		if len(s.x) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(xys(s.x, s.y))
		if err != nil {
			return xerrors.Errorf("parity %v: %w", s.name, err)
		}
		sc.GlyphStyle.Color = s.c
		sc.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(sc)
		p.Legend.Add(s.name, sc)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	p.X.Min, p.X.Max = lo, hi
	p.Y.Min, p.Y.Max = lo, hi
	return save(p, 6*vg.Inch, 6*vg.Inch, path)
}

/*
GridSearch plots cross-validated RMSE against the searched parameter
highlighting the best point
*/
func GridSearch(path, param string, values, rmse []float64, best float64) error {
	p := plot.New()
	p.X.Label.Text = param
	p.Y.Label.Text = "RMSE (eV)"
	sc, err := plotter.NewScatter(xys(values, rmse))
	if err != nil {
		return xerrors.Errorf("grid search scores: %w", err)
	}
	sc.GlyphStyle.Color = trainColor
	p.Add(sc)
	for i, v := range values {
		if v != best {
			continue
		}
		b, err := plotter.NewScatter(plotter.XYs{{X: v, Y: rmse[i]}})
		if err != nil {
			return xerrors.Errorf("grid search best: %w", err)
		}
		b.GlyphStyle.Color = bestColor
		b.GlyphStyle.Radius = vg.Points(5)
		b.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(b)
		break
	}
	p.Add(plotter.NewGrid())
	return save(p, 6*vg.Inch, 4*vg.Inch, path)
}

func save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := fu.EnsureDir(path); err != nil {
		return xerrors.Errorf("failed to create directory for %v: %w", path, err)
	}
	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		if math.IsInf(a.Min, 0) || math.IsInf(a.Max, 0) {
			return xerrors.Errorf("nothing to plot to %v", path)
		}
	}
	if err := p.Save(w, h, path); err != nil {
		return xerrors.Errorf("failed to save plot %v: %w", path, err)
	}
	return nil
}
