package regression

import (
	"math"

	"go-ml.dev/pkg/vacancy/fu"
	"go-ml.dev/pkg/vacancy/model"
)

/*
Result is a statistics record with the data it was computed from
*/
type Result struct {
	*model.Statistics
	Split          *model.Split
	Fitted         *Fitted
	TrainPredicted []float64
	TestPredicted  []float64
}

func cvRMSE(score float64) float64 {
	return math.Sqrt(math.Abs(score))
}

/*
Evaluate measures the fitted model on both partitions of the split
*/
func Evaluate(f *Fitted, s *model.Split, t model.Training) (*Result, error) {
	r := &Result{Split: s, Fitted: f}
	var err error
	if r.TrainPredicted, err = f.Predict(s.Train); err != nil {
		return nil, err
	}
	if r.TestPredicted, err = f.Predict(s.Test); err != nil {
		return nil, err
	}
	ytrain, ytest := s.Train.Labels(), s.Test.Labels()
	train := model.Measure(r.TrainPredicted, ytrain)
	test := model.Measure(r.TestPredicted, ytest)

	st := &model.Statistics{
		Regressor:   f.Kind,
		TrainSize:   t.TrainSize,
		TestSize:    t.TestSize,
		NTrain:      s.Train.Len(),
		NTest:       s.Test.Len(),
		RandomState: t.Seed,
		RmseTrain:   train.RMSE,
		MaeTrain:    train.MAE,
		R2Train:     train.R2,
		RmseTest:    test.RMSE,
		MaeTest:     test.MAE,
		R2Test:      test.R2,
		Errors:      make(map[string]float64, s.Test.Len()),
		Predictions: make(map[string][2]float64, s.Test.Len()),
	}
	residuals := fu.Sub(r.TestPredicted, ytest)
	for i, id := range s.Test.IDs() {
		st.Errors[id] = residuals[i]
		st.Predictions[id] = [2]float64{r.TestPredicted[i], ytest[i]}
	}
	if imp, ok := f.Importances(); ok {
		st.Importances = imp
	}
	if f.Search != nil {
		st.BestParams = f.Search.Params
		for _, x := range f.Search.Trials {
			st.CVScores = append(st.CVScores, model.CVScore{Params: x.Params, RMSE: cvRMSE(x.Score)})
		}
	}
	r.Statistics = st
	return r, nil
}
