/*
Package linear implements ordinary least squares regression
*/
package linear

import (
	"go-ml.dev/pkg/vacancy/fu"
	"go-ml.dev/pkg/vacancy/model"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultMaxCondition is the condition number a design matrix is considered singular above
const DefaultMaxCondition = 1e12

/*
Regressor is an ordinary least squares regression with intercept
*/
type Regressor struct {
	MaxCondition float64 // DefaultMaxCondition if 0
}

/*
Model is a fitted linear regression
*/
type Model struct {
	Intercept    float64
	Coefficients []float64
}

/*
Fit solves the least squares problem with QR decomposition.
Rank deficient systems are reported as errors
*/
func (r Regressor) Fit(x mat.Matrix, y []float64) (model.PredictionModel, error) {
	rows, cols := x.Dims()
	if rows != len(y) {
		return nil, xerrors.Errorf("%d rows does not match %d labels", rows, len(y))
	}
	if rows < cols+1 {
		return nil, xerrors.Errorf("underdetermined system: %d samples for %d coefficients", rows, cols+1)
	}
	if floats.HasNaN(y) {
		return nil, xerrors.Errorf("labels contain NaN")
	}
	a := mat.NewDense(rows, cols+1, nil)
	for i := 0; i < rows; i++ {
		a.Set(i, 0, 1)
		for j := 0; j < cols; j++ {
			a.Set(i, j+1, x.At(i, j))
		}
	}
	var qr mat.QR
	qr.Factorize(a)
	limit := fu.Fnzd(r.MaxCondition, DefaultMaxCondition)
	if c := qr.Cond(); c > limit {
		return nil, xerrors.Errorf("singular matrix: condition number %g exceeds %g", c, limit)
	}
	beta := mat.NewDense(cols+1, 1, nil)
	if err := qr.SolveTo(beta, false, mat.NewDense(rows, 1, append([]float64(nil), y...))); err != nil {
		return nil, xerrors.Errorf("singular matrix: %w", err)
	}
	c := mat.Col(nil, 0, beta)
	return &Model{Intercept: c[0], Coefficients: c[1:]}, nil
}

func (m *Model) Predict(x mat.Matrix) []float64 {
	rows, _ := x.Dims()
	r := make([]float64, rows)
	for i := range r {
		s := m.Intercept
		for j, c := range m.Coefficients {
			s += c * x.At(i, j)
		}
		r[i] = s
	}
	return r
}
