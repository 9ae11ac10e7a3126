package model

import (
	"math"
	"math/rand"
	"testing"

	"gotest.tools/assert"
)

func Test_MeasureExact(t *testing.T) {
	y := []float64{1, 2, 3, 5}
	m := Measure(y, y)
	assert.Equal(t, m.RMSE, 0.0)
	assert.Equal(t, m.MAE, 0.0)
	assert.Equal(t, m.R2, 1.0)
}

func Test_MeasureKnown(t *testing.T) {
	m := Measure([]float64{2, 2, 4}, []float64{1, 2, 3})
	assert.Assert(t, math.Abs(m.RMSE-math.Sqrt(2.0/3)) < 1e-12)
	assert.Assert(t, math.Abs(m.MAE-2.0/3) < 1e-12)
	assert.Assert(t, math.Abs(m.R2-0) < 1e-12)
}

func Test_MeasureConstant(t *testing.T) {
	assert.Equal(t, Measure([]float64{1, 1}, []float64{1, 1}).R2, 1.0)
	assert.Equal(t, Measure([]float64{1, 2}, []float64{1, 1}).R2, 0.0)
}

func Test_RmseNotLessThanMae(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for k := 0; k < 100; k++ {
		n := 1 + rng.Intn(20)
		p, a := make([]float64, n), make([]float64, n)
		for i := range p {
			p[i], a[i] = rng.NormFloat64(), rng.NormFloat64()*3
		}
		m := Measure(p, a)
		assert.Assert(t, m.RMSE >= m.MAE-1e-12)
		assert.Assert(t, m.MAE >= 0)
	}
}
