package linear

import (
	"math"
	"testing"

	"go-ml.dev/pkg/vacancy/model"
	"gonum.org/v1/gonum/mat"
	"gotest.tools/assert"
)

func Test_Noiseless(t *testing.T) {
	x := mat.NewDense(5, 1, []float64{0, 1, 2, 3, 4.5})
	y := []float64{1, 3, 5, 7, 10}
	m, err := Regressor{}.Fit(x, y)
	assert.NilError(t, err)
	lm := m.(*Model)
	assert.Assert(t, math.Abs(lm.Intercept-1) < 1e-9)
	assert.Assert(t, math.Abs(lm.Coefficients[0]-2) < 1e-9)
	p := m.Predict(mat.NewDense(1, 1, []float64{10}))
	assert.Assert(t, math.Abs(p[0]-21) < 1e-9)
	_, ok := m.(model.ImportanceModel)
	assert.Assert(t, !ok)
}

func Test_TwoFeatures(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		1, 2,
	})
	y := []float64{0.5, 1.5, -1.5, -2.5}
	m, err := Regressor{}.Fit(x, y)
	assert.NilError(t, err)
	lm := m.(*Model)
	assert.Assert(t, math.Abs(lm.Intercept-0.5) < 1e-9)
	assert.Assert(t, math.Abs(lm.Coefficients[0]-1) < 1e-9)
	assert.Assert(t, math.Abs(lm.Coefficients[1]+2) < 1e-9)
}

func Test_Singular(t *testing.T) {
	// the second column duplicates the first one
	x := mat.NewDense(4, 2, []float64{1, 1, 2, 2, 3, 3, 4, 4})
	_, err := Regressor{}.Fit(x, []float64{1, 2, 3, 4})
	assert.ErrorContains(t, err, "singular")
}

func Test_Underdetermined(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	_, err := Regressor{}.Fit(x, []float64{1, 2})
	assert.ErrorContains(t, err, "underdetermined")
}
