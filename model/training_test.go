package model

import (
	"testing"

	"golang.org/x/xerrors"
	"gotest.tools/assert"
)

func Test_TrainingDefaults(t *testing.T) {
	q := Training{TrainSize: 22}.Defaults()
	assert.Equal(t, q.Regressor, RandomForest)
	assert.Equal(t, q.TestSize, 50)
	assert.Equal(t, q.Forest.Estimators, 400)
	assert.Equal(t, q.Search.MinFeatures, 20)
	assert.Equal(t, q.Search.MaxFeatures, 45)
	assert.Equal(t, q.Search.Splits, 4)
	assert.Equal(t, q.Search.TestFraction, 0.1)
	assert.NilError(t, q.Validate())

	q = Training{TrainSize: 22, Forest: Forest{Estimators: 10}}.Defaults()
	assert.Equal(t, q.Forest.Estimators, 10)
}

func Test_TrainingUnsupported(t *testing.T) {
	err := Training{Regressor: "svm", TrainSize: 1}.Defaults().Validate()
	var u *UnsupportedRegressorError
	assert.Assert(t, xerrors.As(err, &u))
	assert.Equal(t, u.Kind, Kind("svm"))
	assert.Assert(t, IsConfigurationError(err))
	assert.Assert(t, !IsFitError(err))
}

func Test_TrainingInvalid(t *testing.T) {
	for _, q := range []Training{
		{TrainSize: 0},
		{TrainSize: 5, Search: Search{MinFeatures: 5, MaxFeatures: 5}},
		{TrainSize: 5, Search: Search{TestFraction: 1.5}},
		{TrainSize: 5, Forest: Forest{MaxDepth: -1}},
		{TrainSize: 5, Search: Search{Splits: -1}},
	} {
		assert.Assert(t, IsConfigurationError(q.Defaults().Validate()), "%+v", q)
	}
	// forest options do not matter for linear
	assert.NilError(t, Training{Regressor: Linear, TrainSize: 5, Search: Search{MinFeatures: 5, MaxFeatures: 1}}.Defaults().Validate())
}

func Test_TrainingName(t *testing.T) {
	q := Training{Regressor: Linear, TrainSize: 70, Seed: 3}
	assert.Equal(t, q.Name("charge0"), "linear_charge0_rand3_size70")
	assert.Assert(t, q.Log() != nil)
}
