package model

import (
	"gonum.org/v1/gonum/mat"
)

/*
Kind is a regression strategy identifier
*/
type Kind string

const (
	RandomForest Kind = "random_forest"
	Linear       Kind = "linear"
)

/*
HungryModel is an ML algorithm grows from a data to predict something.
Needs to be fattened by Fit to predict.
*/
type HungryModel interface {
	Fit(x mat.Matrix, y []float64) (PredictionModel, error)
}

/*
PredictionModel is a predictor interface
*/
type PredictionModel interface {
	// Predict returns one value per matrix row
	Predict(x mat.Matrix) []float64
}

/*
ImportanceModel is a predictor able to weight its input features.
Weights are aligned to the matrix columns model was fitted on
*/
type ImportanceModel interface {
	PredictionModel
	FeatureImportances() []float64
}

/*
Params is a set of hyper-parameters used by hyper-parameter optimization to generate new model
*/
type Params map[string]float64

/*
Get value of the parameter by name if exists and dflt value otherwise
*/
func (p Params) Get(name string, dflt float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return dflt
}
