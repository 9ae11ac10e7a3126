/*
Package sweep runs regressions over every combination of a sweep definition
*/
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"go-ml.dev/pkg/vacancy/config"
	"go-ml.dev/pkg/vacancy/fu"
	"go-ml.dev/pkg/vacancy/model"
	"go-ml.dev/pkg/vacancy/plots"
	"go-ml.dev/pkg/vacancy/regression"
	"go-ml.dev/pkg/vacancy/store"
	"go-ml.dev/pkg/vacancy/tables"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

/*
Job is one (dataset, regressor, seed, train size) combination
*/
type Job struct {
	Name     string
	Charge   string
	Dataset  *tables.Table
	Training model.Training
}

/*
Summary lists names of completed and failed jobs
*/
type Summary struct {
	Done   []string
	Failed map[string]error
}

/*
Runner executes a sweep
*/
type Runner struct {
	Sweep  *config.Sweep
	Index  *store.Index // optional result index
	Logger *slog.Logger

	// Open loads datasets, tables.Open if nil
	Open func(path string, cols tables.Columns) (*tables.Table, error)
}

func (r *Runner) log() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

/*
Jobs loads datasets and expands the sweep into jobs ordered
by charge, run, seed and train size
*/
func (r *Runner) Jobs() ([]Job, error) {
	open := r.Open
	if open == nil {
		open = tables.Open
	}
	var jobs []Job
	for _, d := range r.Sweep.Datasets {
		t, err := open(d.Path, r.Sweep.Columns)
		if err != nil {
			return nil, err
		}
		r.log().Info("dataset loaded", "charge", d.Charge, "rows", t.Len(),
			"groups", len(t.Groups()), "digest", fmt.Sprintf("%016x", t.Digest))
		for _, run := range r.Sweep.Runs {
			if !run.Applies(d.Charge) {
				continue
			}
			for _, seed := range r.Sweep.Seeds {
				for _, size := range r.Sweep.TrainSizes {
					q := run
					q.Seed, q.TrainSize = seed, size
					q.Logger = r.log().With("charge", d.Charge)
					jobs = append(jobs, Job{Name: q.Name(d.Charge), Charge: d.Charge, Dataset: t, Training: q.Training})
				}
			}
		}
	}
	return jobs, nil
}

/*
Run executes all jobs. Without KeepGoing the first failure cancels
jobs not started yet and is returned
*/
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	jobs, err := r.Jobs()
	if err != nil {
		return nil, err
	}
	sum := &Summary{Failed: map[string]error{}}
	mu := sync.Mutex{}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fu.Maxi(r.Sweep.Workers, 1))
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := r.Do(j)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				sum.Done = append(sum.Done, j.Name)
				return nil
			}
			sum.Failed[j.Name] = err
			if r.Sweep.KeepGoing {
				r.log().Error("run failed, skipped", "name", j.Name, "err", err)
				return nil
			}
			return xerrors.Errorf("run %v: %w", j.Name, err)
		})
	}
	err = g.Wait()
	sort.Strings(sum.Done)
	return sum, err
}

/*
Do runs one job and writes its artifacts. A failed run leaves no files behind
*/
func (r *Runner) Do(j Job) (err error) {
	log := r.log().With("name", j.Name)
	log.Info("run started")
	res, err := regression.Run(model.Dataset{Source: j.Dataset}, j.Training)
	if err != nil {
		return err
	}
	var written []string
	defer func() {
		if err != nil {
			for _, p := range written {
				os.Remove(p)
			}
		}
	}()
	if r.Sweep.Plots {
		if written, err = r.plot(j.Name, res); err != nil {
			return err
		}
	}
	path := fu.ResultPath(r.Sweep.Output, j.Name+".json")
	written = append(written, path)
	if err = res.WriteFile(path); err != nil {
		return err
	}
	if r.Index != nil {
		_, err = r.Index.Put(store.Run{
			Name:       j.Name,
			Charge:     j.Charge,
			Digest:     fmt.Sprintf("%016x", j.Dataset.Digest),
			Statistics: res.Statistics,
		})
		if err != nil {
			return err
		}
	}
	log.Info("run finished", "path", path, "rmse_test", res.RmseTest, "r2_test", res.R2Test)
	return nil
}

// plot returns paths of the written images, also the partially written ones on error
func (r *Runner) plot(name string, res *regression.Result) ([]string, error) {
	parity := fu.ResultPath(r.Sweep.Output, "parity_"+name+".png")
	err := plots.Parity(parity,
		res.Split.Train.Labels(), res.TrainPredicted,
		res.Split.Test.Labels(), res.TestPredicted)
	if err != nil || len(res.CVScores) == 0 {
		return []string{parity}, err
	}
	const param = "max_features"
	values := make([]float64, len(res.CVScores))
	rmse := make([]float64, len(res.CVScores))
	for i, x := range res.CVScores {
		values[i], rmse[i] = x.Params.Get(param, 0), x.RMSE
	}
	grid := fu.ResultPath(r.Sweep.Output, "grid_search_"+name+".png")
	err = plots.GridSearch(grid, param, values, rmse, res.BestParams.Get(param, 0))
	return []string{parity, grid}, err
}
