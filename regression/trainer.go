/*
Package regression fits and evaluates vacancy formation energy regressors
*/
package regression

import (
	"reflect"

	"go-ml.dev/pkg/vacancy/model"
	"go-ml.dev/pkg/vacancy/model/forest"
	"go-ml.dev/pkg/vacancy/model/hyperopt"
	"go-ml.dev/pkg/vacancy/model/linear"
	"go-ml.dev/pkg/vacancy/tables"
)

const maxFeaturesParam = "max_features"

/*
Fitted is a model fitted on the training partition
*/
type Fitted struct {
	Kind     model.Kind
	Features []string // matrix columns the model was fitted on
	Model    model.PredictionModel
	Search   *hyperopt.Report // grid search report, nil if there was no search
}

func (f *Fitted) Predict(t *tables.Table) ([]float64, error) {
	x, err := t.Matrix(f.Features...)
	if err != nil {
		return nil, err
	}
	return f.Model.Predict(x), nil
}

/*
BestParams returns hyper-parameters selected by grid search or nil
*/
func (f *Fitted) BestParams() model.Params {
	if f.Search == nil {
		return nil
	}
	return f.Search.Params
}

/*
Importances returns feature weights sorted descending if the model is able to weight features
*/
func (f *Fitted) Importances() (model.Importances, bool) {
	im, ok := f.Model.(model.ImportanceModel)
	if !ok {
		return nil, false
	}
	return model.SortImportances(f.Features, im.FeatureImportances()), true
}

/*
CheckFeatures verifies the grid search range fits the count of descriptors
*/
func CheckFeatures(t model.Training, features int) error {
	if t.Regressor == model.RandomForest && t.Search.MaxFeatures-1 > features {
		return model.Misconfigured(
			"max_features range [%d,%d) exceeds %d descriptors",
			t.Search.MinFeatures, t.Search.MaxFeatures, features)
	}
	return nil
}

func forestOf(t model.Training) forest.Regressor {
	return forest.Regressor{
		Estimators:     t.Forest.Estimators,
		MinSamplesLeaf: t.Forest.MinSamplesLeaf,
		MaxDepth:       t.Forest.MaxDepth,
		Jobs:           t.Forest.Jobs,
		Seed:           t.Seed,
	}
}

/*
Fit trains the regressor described by t on the train table.
t is expected to be validated and have defaults applied
*/
func Fit(train *tables.Table, features []string, t model.Training) (*Fitted, error) {
	x, err := train.Matrix(features...)
	if err != nil {
		return nil, &model.FitError{Kind: t.Regressor, Err: err}
	}
	y := train.Labels()
	f := &Fitted{Kind: t.Regressor, Features: features}
	switch t.Regressor {
	case model.RandomForest:
		if err = CheckFeatures(t, len(features)); err != nil {
			return nil, err
		}
		space := hyperopt.Space{
			Seed:         t.Seed,
			Splits:       t.Search.Splits,
			TestFraction: t.Search.TestFraction,
			Jobs:         t.Search.Jobs,
			Variance: hyperopt.Variance{
				maxFeaturesParam: hyperopt.IntRange{t.Search.MinFeatures, t.Search.MaxFeatures},
			},
			ModelFunc: func(p hyperopt.Params) (model.HungryModel, error) {
				r := forestOf(t)
				err := hyperopt.Apply(p, map[string]reflect.Value{maxFeaturesParam: reflect.ValueOf(&r.MaxFeatures)})
				return r, err
			},
		}
		if f.Search, err = space.SearchCV(x, y); err != nil {
			return nil, &model.FitError{Kind: t.Regressor, Err: err}
		}
		t.Log().Debug("grid search done",
			"best_max_features", f.Search.Get(maxFeaturesParam, 0),
			"cv_rmse", cvRMSE(f.Search.Score))
		r := forestOf(t)
		r.MaxFeatures = int(f.Search.Get(maxFeaturesParam, 0))
		if f.Model, err = r.Fit(x, y); err != nil {
			return nil, &model.FitError{Kind: t.Regressor, Err: err}
		}
	case model.Linear:
		if f.Model, err = (linear.Regressor{}).Fit(x, y); err != nil {
			return nil, &model.FitError{Kind: t.Regressor, Err: err}
		}
	default:
		return nil, &model.UnsupportedRegressorError{Kind: t.Regressor}
	}
	return f, nil
}
