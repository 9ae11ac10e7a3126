/*
Package hyperopt implements exhaustive grid search of hyper-parameters
scored by shuffle-split cross-validation
*/
package hyperopt

import (
	"math"
	"math/rand"
	"reflect"
	"sort"

	"go-ml.dev/pkg/vacancy/fu"
	"go-ml.dev/pkg/vacancy/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

/*
IntRange is a half-open integer range specified by min and max values [min,max)
*/
type IntRange [2]int

/*
List is a list of possible parameter values
*/
type List []float64

/*
Value is a single value parameter
*/
type Value float64

// type limitation interface
type distribution interface {
	grid() []float64
}

func (r IntRange) grid() []float64 {
	q := []float64{}
	for i := r[0]; i < r[1]; i++ {
		q = append(q, float64(i))
	}
	return q
}

func (l List) grid() []float64 {
	return append([]float64(nil), l...)
}

func (v Value) grid() []float64 {
	return []float64{float64(v)}
}

/*
Variance is a space of hyper-parameters used in *Search functions
*/
type Variance map[string]distribution

/*
Params is a set of hyper-parameters used by *SearchCV functions to generate new model
*/
type Params = model.Params

/*
Trial is a cross-validated score of one grid point
*/
type Trial struct {
	Params
	Score float64 // mean negative squared error over splits
}

/*
Report is a result of Hyper-parameters Optimization
*/
type Report struct {
	Params
	Score  float64
	Trials []Trial // in grid order
}

/*
Space is a definition of hyper-parameters optimization space
*/
type Space struct {
	Seed         int64   // shuffle seed
	Splits       int     // count of shuffle splits
	TestFraction float64 // held out fraction of every split
	Jobs         int     // parallel grid points, sequential if <= 1

	// the model generation function
	ModelFunc func(Params) (model.HungryModel, error)

	// hyper-parameters variance
	Variance Variance
}

/*
Grid enumerates all combinations of the variance values.
Names are iterated in lexical order, the last name changes fastest
*/
func (v Variance) Grid() []Params {
	names := make([]string, 0, len(v))
	for k := range v {
		names = append(names, k)
	}
	sort.Strings(names)
	r := []Params{{}}
	for _, n := range names {
		q := []Params{}
		for _, p := range r {
			for _, x := range v[n].grid() {
				c := Params{n: x}
				for k, y := range p {
					c[k] = y
				}
				q = append(q, c)
			}
		}
		r = q
	}
	if len(names) == 0 {
		return nil
	}
	return r
}

/*
ShuffleSplit generates independent random train/test index partitions.
Every test set has ceil(fraction*n) samples
*/
func ShuffleSplit(n, splits int, fraction float64, seed int64) ([][2][]int, error) {
	nt := int(math.Ceil(fraction * float64(n)))
	if nt < 1 || n-nt < 1 {
		return nil, xerrors.Errorf("can't split %d samples with test fraction %v", n, fraction)
	}
	rng := rand.New(rand.NewSource(seed))
	r := make([][2][]int, splits)
	for i := range r {
		p := rng.Perm(n)
		r[i] = [2][]int{p[nt:], p[:nt]}
	}
	return r, nil
}

/*
SearchCV evaluates every grid point and returns the one with the highest score.
The first point wins on ties
*/
func (s Space) SearchCV(x mat.Matrix, y []float64) (*Report, error) {
	grid := s.Variance.Grid()
	if len(grid) == 0 {
		return nil, xerrors.Errorf("empty hyper-parameters grid")
	}
	n, _ := x.Dims()
	folds, err := ShuffleSplit(n, fu.Maxi(s.Splits, 1), s.TestFraction, s.Seed)
	if err != nil {
		return nil, err
	}
	type part struct {
		x  *mat.Dense
		y  []float64
		tx *mat.Dense
		ty []float64
	}
	parts := make([]part, len(folds))
	for i, f := range folds {
		parts[i].x, parts[i].y = Rows(x, y, f[0])
		parts[i].tx, parts[i].ty = Rows(x, y, f[1])
	}

	trials := make([]Trial, len(grid))
	g := errgroup.Group{}
	g.SetLimit(fu.Maxi(s.Jobs, 1))
	for i, p := range grid {
		g.Go(func() error {
			score := 0.0
			for _, q := range parts {
				hm, err := s.ModelFunc(p)
				if err != nil {
					return err
				}
				pm, err := hm.Fit(q.x, q.y)
				if err != nil {
					return xerrors.Errorf("grid point %v: %w", p, err)
				}
				score -= fu.Mse(pm.Predict(q.tx), q.ty)
			}
			trials[i] = Trial{Params: p, Score: score / float64(len(parts))}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	scores := make([]float64, len(trials))
	for i, t := range trials {
		scores[i] = t.Score
	}
	j := fu.Indmaxd(scores)
	return &Report{Params: trials[j].Params, Score: trials[j].Score, Trials: trials}, nil
}

/*
Rows selects rows of a matrix and labels by index
*/
func Rows(x mat.Matrix, y []float64, idx []int) (*mat.Dense, []float64) {
	_, c := x.Dims()
	m := mat.NewDense(len(idx), c, nil)
	l := make([]float64, len(idx))
	for i, k := range idx {
		for j := 0; j < c; j++ {
			m.Set(i, j, x.At(k, j))
		}
		l[i] = y[k]
	}
	return m, l
}

/*
Apply apples params to a model
*/
func Apply(p Params, m map[string]reflect.Value) error {
	for k, v := range p {
		ref, ok := m[k]
		if !ok {
			return xerrors.Errorf("model does not have field `%v`", k)
		}
		ref.Elem().Set(reflect.ValueOf(v).Convert(ref.Type().Elem()))
	}
	return nil
}
