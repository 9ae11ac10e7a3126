package config

import (
	"path/filepath"
	"testing"

	"go-ml.dev/pkg/vacancy/model"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
)

func Test_Load(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "sweep.yaml"))
	assert.NilError(t, err)
	assert.Equal(t, s.Output, filepath.Join("testdata", "out"))
	assert.Equal(t, s.Index, filepath.Join("testdata", "out", "index.sqlite"))
	assert.Equal(t, s.Workers, 2)
	assert.Assert(t, s.Plots)
	assert.DeepEqual(t, s.Seeds, []int64{1, 2})
	assert.DeepEqual(t, s.TrainSizes, []int{22, 70})
	assert.Equal(t, s.Datasets[0].Path, filepath.Join("testdata", "df_charge0.csv.xz"))
	assert.Equal(t, s.Datasets[1].Path, "/data/df_charge1.csv")

	rf := s.Runs[0]
	assert.Equal(t, rf.Regressor, model.RandomForest)
	assert.Equal(t, rf.Forest.Estimators, 200)
	assert.Equal(t, rf.Search.MaxFeatures, 30)
	assert.Equal(t, rf.Search.Splits, model.DefaultSplits)
	assert.Equal(t, rf.TestSize, model.DefaultTestSize)
	assert.Assert(t, rf.Applies("charge1"))

	lin := s.Runs[1]
	assert.Equal(t, lin.Regressor, model.Linear)
	assert.Equal(t, len(lin.Descriptors), 4)
	assert.Assert(t, lin.Applies("charge0"))
	assert.Assert(t, !lin.Applies("charge1"))
	lin.Seed, lin.TrainSize = 1, 22
	assert.Equal(t, lin.Name("charge0"), "linear_charge0_rand1_size22_deml")
}

func Test_ParseDefaults(t *testing.T) {
	s, err := Parse([]byte("datasets: [{charge: charge2, path: a.csv}]\n"))
	assert.NilError(t, err)
	assert.Equal(t, s.Output, DefaultOutput)
	assert.DeepEqual(t, s.TrainSizes, DefaultTrainSizes)
	assert.DeepEqual(t, s.Seeds, []int64{0})
	assert.Equal(t, len(s.Runs), 1)
	assert.Equal(t, s.Runs[0].Regressor, model.RandomForest)
	assert.Equal(t, s.Runs[0].Forest.Estimators, 400)
}

func Test_ParseErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"datasets: [{charge: c0}]",
		"datasets: [{charge: c0, path: a}, {charge: c0, path: b}]",
		"datasets: [{charge: c0, path: a}]\nruns: [{regressor: svm}]",
		"datasets: [{charge: c0, path: a}]\nruns: [{regressor: linear, charges: [c9]}]",
		"datasets: [{charge: c0, path: a}]\nruns: [{regressor: linear}, {regressor: linear}]",
		"datasets: [{charge: c0, path: a}]\nunknown: 1",
	} {
		_, err := Parse([]byte(src))
		assert.Assert(t, model.IsConfigurationError(err), "%q: %v", src, err)
	}
	_, err := Parse([]byte("datasets: [{charge: c0, path: a}]\nruns: [{regressor: svm}]"))
	var u *model.UnsupportedRegressorError
	assert.Assert(t, xerrors.As(err, &u))
}
