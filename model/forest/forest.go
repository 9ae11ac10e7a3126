/*
Package forest implements a bagged ensemble of regression trees (random forest)
*/
package forest

import (
	"math"
	"math/rand"
	"runtime"

	"go-ml.dev/pkg/vacancy/fu"
	"go-ml.dev/pkg/vacancy/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

/*
Regressor is a random forest definition
*/
type Regressor struct {
	Estimators     int   // count of trees, 400 if 0
	MaxFeatures    int   // features considered per split, all features if 0
	MinSamplesLeaf int   // minimal samples in a leaf, 1 if 0
	MaxDepth       int   // unbounded if 0
	Jobs           int   // parallel tree builders, all CPUs if <= 0
	Seed           int64 // bootstrap and feature sampling seed
}

/*
Model is a fitted random forest
*/
type Model struct {
	trees       []*node
	features    int
	importances []float64
}

/*
Fit grows the forest, every tree on its own bootstrap sample
*/
func (r Regressor) Fit(x mat.Matrix, y []float64) (model.PredictionModel, error) {
	rows, nf := x.Dims()
	if rows == 0 || rows != len(y) {
		return nil, xerrors.Errorf("%d rows does not match %d labels", rows, len(y))
	}
	mf := fu.Fnzi(r.MaxFeatures, nf)
	if mf < 1 || mf > nf {
		return nil, xerrors.Errorf("max_features %d is out of [1,%d]", mf, nf)
	}
	if floats.HasNaN(y) {
		return nil, xerrors.Errorf("labels contain NaN")
	}
	cols := make([][]float64, nf)
	for j := range cols {
		cols[j] = mat.Col(nil, j, x)
		for _, v := range cols[j] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, xerrors.Errorf("feature %d contains %v", j, v)
			}
		}
	}

	n := fu.Fnzi(r.Estimators, model.DefaultEstimators)
	seeds := make([]int64, n)
	master := rand.New(rand.NewSource(r.Seed))
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	m := &Model{trees: make([]*node, n), features: nf}
	imps := make([][]float64, n)
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g := errgroup.Group{}
	g.SetLimit(fu.Mini(jobs, n))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			b := &builder{
				cols:        cols,
				y:           y,
				maxFeatures: mf,
				minLeaf:     fu.Maxi(r.MinSamplesLeaf, 1),
				maxDepth:    r.MaxDepth,
				rng:         rand.New(rand.NewSource(seeds[i])),
				imp:         make([]float64, nf),
			}
			idx := make([]int, rows)
			for k := range idx {
				idx[k] = b.rng.Intn(rows)
			}
			m.trees[i] = b.grow(idx, 0)
			imps[i] = normalize(b.imp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m.importances = make([]float64, nf)
	for _, v := range imps {
		floats.Add(m.importances, v)
	}
	m.importances = normalize(m.importances)
	return m, nil
}

func normalize(a []float64) []float64 {
	if s := floats.Sum(a); s > 0 {
		floats.Scale(1/s, a)
	}
	return a
}

/*
Predict averages predictions of all trees
*/
func (m *Model) Predict(x mat.Matrix) []float64 {
	rows, _ := x.Dims()
	r := make([]float64, rows)
	v := make([]float64, m.features)
	for i := range r {
		for j := range v {
			v[j] = x.At(i, j)
		}
		s := 0.0
		for _, t := range m.trees {
			s += t.predict(v)
		}
		r[i] = s / float64(len(m.trees))
	}
	return r
}

/*
FeatureImportances returns normalized mean impurity decrease per feature
*/
func (m *Model) FeatureImportances() []float64 {
	return append([]float64(nil), m.importances...)
}

func (m *Model) Len() int {
	return len(m.trees)
}
