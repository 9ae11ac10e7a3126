package regression

import (
	"go-ml.dev/pkg/vacancy/model"
)

/*
Run splits the dataset, fits the regressor and evaluates it.
Configuration errors are reported before any fitting
*/
func Run(d model.Dataset, t model.Training) (*Result, error) {
	t = t.Defaults()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if len(t.Descriptors) != 0 {
		d.Features = t.Descriptors
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	features := d.Descriptors()
	if err := CheckFeatures(t, len(features)); err != nil {
		return nil, err
	}
	s, err := d.Split(t.TrainSize, t.TestSize, t.Seed)
	if err != nil {
		return nil, err
	}
	log := t.Log().With("regressor", t.Regressor, "seed", t.Seed, "train_size", t.TrainSize)
	log.Debug("dataset split", "train_samples", s.Train.Len(), "test_samples", s.Test.Len())
	f, err := Fit(s.Train, features, t)
	if err != nil {
		return nil, err
	}
	r, err := Evaluate(f, s, t)
	if err != nil {
		return nil, err
	}
	log.Info("regression done", "rmse_test", r.RmseTest, "mae_test", r.MaeTest, "r2_test", r.R2Test)
	return r, nil
}
