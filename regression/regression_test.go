package regression

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"go-ml.dev/pkg/vacancy/model"
	"go-ml.dev/pkg/vacancy/tables"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
)

// dataset of n groups with 2 samples each, target = 2*feature_a + 1
func noiseless(n int) model.Dataset {
	rng := rand.New(rand.NewSource(11))
	t := &tables.Table{Features: []string{"feature_a", "feature_b"}}
	for i := 0; i < n; i++ {
		for q := 0; q < 2; q++ {
			a := rng.Float64() * 10
			t.Rows = append(t.Rows, tables.Row{
				Group:  fmt.Sprintf("M%d", i),
				ID:     fmt.Sprintf("M%d_Va_%d", i, q),
				Label:  2*a + 1,
				Values: []float64{a, rng.Float64()},
			})
		}
	}
	return model.Dataset{Source: t}
}

func Test_LinearNoiseless(t *testing.T) {
	r, err := Run(noiseless(10), model.Training{
		Regressor:   model.Linear,
		TrainSize:   6,
		TestSize:    4,
		Seed:        42,
		Descriptors: []string{"feature_a"},
	})
	assert.NilError(t, err)
	assert.Assert(t, r.RmseTest < 1e-9)
	assert.Assert(t, math.Abs(r.R2Test-1) < 1e-9)
	assert.Assert(t, r.Importances == nil)
	assert.Assert(t, r.BestParams == nil && r.CVScores == nil)
	assert.Equal(t, r.NTrain, 12)
	assert.Equal(t, r.NTest, 8)
	assert.Equal(t, len(r.Errors), 8)
	for id, e := range r.Errors {
		p := r.Predictions[id]
		assert.Equal(t, e, p[0]-p[1])
	}
	_, ok := r.Fitted.Importances()
	assert.Assert(t, !ok)

	b, err := r.ToStorage()
	assert.NilError(t, err)
	q, err := model.FromStorage(b)
	assert.NilError(t, err)
	assert.DeepEqual(t, q, r.Statistics)
}

func Test_Unsupported(t *testing.T) {
	_, err := Run(noiseless(10), model.Training{Regressor: "svm", TrainSize: 6, TestSize: 4})
	var u *model.UnsupportedRegressorError
	assert.Assert(t, xerrors.As(err, &u))
	assert.Assert(t, model.IsConfigurationError(err))
}

func Test_SplitTooLarge(t *testing.T) {
	_, err := Run(noiseless(10), model.Training{Regressor: model.Linear, TrainSize: 8, TestSize: 5})
	assert.Assert(t, model.IsConfigurationError(err))
	assert.Assert(t, !model.IsFitError(err))
}

func Test_MaxFeaturesTooLarge(t *testing.T) {
	_, err := Run(noiseless(10), model.Training{TrainSize: 6, TestSize: 4})
	assert.Assert(t, model.IsConfigurationError(err))
	assert.ErrorContains(t, err, "exceeds 2 descriptors")
}

func Test_UnknownDescriptor(t *testing.T) {
	_, err := Run(noiseless(10), model.Training{
		Regressor: model.Linear, TrainSize: 6, TestSize: 4, Descriptors: []string{"band_gap"}})
	assert.Assert(t, model.IsConfigurationError(err))
}

func Test_LinearSingular(t *testing.T) {
	d := noiseless(10)
	for i := range d.Source.Rows {
		d.Source.Rows[i].Values[1] = d.Source.Rows[i].Values[0]
	}
	_, err := Run(d, model.Training{Regressor: model.Linear, TrainSize: 6, TestSize: 4})
	var f *model.FitError
	assert.Assert(t, xerrors.As(err, &f))
	assert.Equal(t, f.Kind, model.Linear)
	assert.Assert(t, !model.IsConfigurationError(err))
}

func Test_RandomForest(t *testing.T) {
	tr := model.Training{
		TrainSize: 14,
		TestSize:  6,
		Seed:      3,
		Forest:    model.Forest{Estimators: 20},
		Search:    model.Search{MinFeatures: 1, MaxFeatures: 3},
	}
	r, err := Run(noiseless(20), tr)
	assert.NilError(t, err)
	assert.Equal(t, r.Regressor, model.RandomForest)
	assert.Equal(t, r.TestSize, 6)
	assert.Equal(t, len(r.CVScores), 2)
	mf := r.BestParams.Get("max_features", 0)
	assert.Assert(t, mf == 1 || mf == 2)
	assert.Equal(t, len(r.Importances), 2)
	assert.Equal(t, r.Importances[0].Feature, "feature_a")
	assert.Assert(t, r.Importances[0].Weight >= r.Importances[1].Weight)
	assert.Assert(t, r.R2Train > 0.9)
	assert.Assert(t, r.RmseTest >= r.MaeTest)

	b, err := r.ToStorage()
	assert.NilError(t, err)
	q, err := model.FromStorage(b)
	assert.NilError(t, err)
	assert.DeepEqual(t, q, r.Statistics)

	again, err := Run(noiseless(20), tr)
	assert.NilError(t, err)
	assert.DeepEqual(t, again.Statistics, r.Statistics)
}
