package model

import (
	"math"

	"go-ml.dev/pkg/vacancy/fu"
)

/*
Metrics are regression accuracy metrics of one partition
*/
type Metrics struct {
	RMSE, MAE, R2 float64
}

/*
Measure calculates metrics of predicted against actual values.
R2 of a constant target is 1 for exact predictions and 0 otherwise
*/
func Measure(predicted, actual []float64) Metrics {
	mse := fu.Mse(predicted, actual)
	m := Metrics{RMSE: math.Sqrt(mse), MAE: fu.Mae(predicted, actual)}
	sst := fu.Sse(actual)
	switch {
	case sst != 0:
		m.R2 = 1 - mse*float64(len(actual))/sst
	case mse == 0:
		m.R2 = 1
	}
	return m
}
