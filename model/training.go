package model

import (
	"fmt"
	"log/slog"

	"go-ml.dev/pkg/vacancy/fu"
)

const (
	DefaultTestSize     = 50
	DefaultEstimators   = 400
	DefaultMinFeatures  = 20
	DefaultMaxFeatures  = 45
	DefaultSplits       = 4
	DefaultTestFraction = 0.1
)

/*
Training is a complete description of one regression run
*/
type Training struct {
	Regressor   Kind     `yaml:"regressor"`    // random_forest by default
	TrainSize   int      `yaml:"train_size"`   // count of train groups
	TestSize    int      `yaml:"test_size"`    // count of test groups
	Seed        int64    `yaml:"random_state"` // split, cross-validation and bootstrap seed
	Descriptors []string `yaml:"descriptors"`  // restricts features, all table features if empty
	Forest      Forest   `yaml:"forest"`
	Search      Search   `yaml:"search"`

	Logger *slog.Logger `yaml:"-"`
}

/*
Forest holds random forest options
*/
type Forest struct {
	Estimators     int `yaml:"estimators"`
	Jobs           int `yaml:"jobs"` // parallel tree builders, all CPUs if <= 0
	MinSamplesLeaf int `yaml:"min_samples_leaf"`
	MaxDepth       int `yaml:"max_depth"` // unbounded if 0
}

/*
Search holds the max_features grid search options.
The grid is the half-open range [MinFeatures, MaxFeatures)
*/
type Search struct {
	MinFeatures  int     `yaml:"min_features"`
	MaxFeatures  int     `yaml:"max_features"`
	Splits       int     `yaml:"splits"`
	TestFraction float64 `yaml:"test_fraction"`
	Jobs         int     `yaml:"jobs"` // parallel candidates, sequential if <= 1
}

/*
Defaults returns a copy with zero options replaced by default values
*/
func (t Training) Defaults() Training {
	if t.Regressor == "" {
		t.Regressor = RandomForest
	}
	t.TestSize = fu.Fnzi(t.TestSize, DefaultTestSize)
	t.Forest.Estimators = fu.Fnzi(t.Forest.Estimators, DefaultEstimators)
	t.Forest.MinSamplesLeaf = fu.Fnzi(t.Forest.MinSamplesLeaf, 1)
	t.Search.MinFeatures = fu.Fnzi(t.Search.MinFeatures, DefaultMinFeatures)
	t.Search.MaxFeatures = fu.Fnzi(t.Search.MaxFeatures, DefaultMaxFeatures)
	t.Search.Splits = fu.Fnzi(t.Search.Splits, DefaultSplits)
	t.Search.TestFraction = fu.Fnzd(t.Search.TestFraction, DefaultTestFraction)
	return t
}

/*
Validate checks options without looking at any data
*/
func (t Training) Validate() error {
	switch t.Regressor {
	case RandomForest, Linear:
	default:
		return &UnsupportedRegressorError{Kind: t.Regressor}
	}
	if t.TrainSize < 1 || t.TestSize < 1 {
		return Misconfigured("train size %d and test size %d must be positive", t.TrainSize, t.TestSize)
	}
	if t.Regressor != RandomForest {
		return nil
	}
	if t.Forest.Estimators < 1 {
		return Misconfigured("forest needs at least one estimator, got %d", t.Forest.Estimators)
	}
	if t.Forest.MinSamplesLeaf < 1 || t.Forest.MaxDepth < 0 {
		return Misconfigured("invalid forest shape: min_samples_leaf %d, max_depth %d",
			t.Forest.MinSamplesLeaf, t.Forest.MaxDepth)
	}
	if t.Search.MinFeatures < 1 || t.Search.MaxFeatures <= t.Search.MinFeatures {
		return Misconfigured("invalid max_features range [%d,%d)", t.Search.MinFeatures, t.Search.MaxFeatures)
	}
	if t.Search.Splits < 1 {
		return Misconfigured("cross-validation needs at least one split, got %d", t.Search.Splits)
	}
	if t.Search.TestFraction <= 0 || t.Search.TestFraction >= 1 {
		return Misconfigured("cross-validation test fraction %v is out of (0,1)", t.Search.TestFraction)
	}
	return nil
}

/*
Name is the descriptive run name used for result files
*/
func (t Training) Name(charge string) string {
	return fmt.Sprintf("%v_%v_rand%d_size%d", t.Regressor, charge, t.Seed, t.TrainSize)
}

func (t Training) Log() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}
