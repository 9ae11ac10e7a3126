package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go-ml.dev/pkg/vacancy/config"
	"go-ml.dev/pkg/vacancy/model"
	"go-ml.dev/pkg/vacancy/store"
	"go-ml.dev/pkg/vacancy/sweep"
)

var (
	runData    string
	runCharge  string
	runOutput  string
	runIndex   string
	runPlots   bool
	runColumns = struct{ group, id, label string }{}
	runPreset  config.Run
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fit and evaluate one regressor on one dataset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s := &config.Sweep{
			Output:     runOutput,
			Index:      runIndex,
			Plots:      runPlots,
			Seeds:      []int64{runPreset.Seed},
			TrainSizes: []int{runPreset.TrainSize},
			Datasets:   []config.Dataset{{Charge: runCharge, Path: runData}},
			Runs:       []config.Run{runPreset},
		}
		s.Columns.Group, s.Columns.ID, s.Columns.Label = runColumns.group, runColumns.id, runColumns.label
		s.Defaults()
		if err := s.Validate(); err != nil {
			return err
		}
		return execute(cmd.Context(), s)
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run every combination of a YAML sweep definition",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			return fmt.Errorf("please provide a sweep definition using --config")
		}
		s, err := config.Load(path)
		if err != nil {
			return err
		}
		if seeds, _ := cmd.Flags().GetInt64Slice("seed"); len(seeds) != 0 {
			s.Seeds = seeds
			if err = s.Validate(); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("keep-going") {
			s.KeepGoing, _ = cmd.Flags().GetBool("keep-going")
		}
		return execute(cmd.Context(), s)
	},
}

func execute(ctx context.Context, s *config.Sweep) error {
	if ctx == nil {
		ctx = context.Background()
	}
	r := &sweep.Runner{Sweep: s}
	if s.Index != "" {
		x, err := store.Open(s.Index)
		if err != nil {
			return err
		}
		defer x.Close()
		r.Index = x
	}
	sum, err := r.Run(ctx)
	if sum != nil {
		fmt.Printf("%d runs done, %d failed\n", len(sum.Done), len(sum.Failed))
		for n, e := range sum.Failed {
			fmt.Printf("  %v: %v\n", n, e)
		}
	}
	return err
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runData, "data", "", "dataset CSV file, *.xz is decompressed")
	f.StringVar(&runCharge, "charge", "charge0", "charge subset label used in result names")
	f.StringVar(&runOutput, "output", config.DefaultOutput, "result directory")
	f.StringVar(&runIndex, "index", "", "SQLite result index")
	f.BoolVar(&runPlots, "plots", false, "write parity and grid search plots")
	f.StringVar(&runColumns.group, "group-column", "", "grouping column")
	f.StringVar(&runColumns.id, "id-column", "", "sample id column")
	f.StringVar(&runColumns.label, "label-column", "", "target column")
	f.StringVar((*string)(&runPreset.Regressor), "regressor", string(model.RandomForest), "random_forest or linear")
	f.IntVar(&runPreset.TrainSize, "train-size", 22, "count of train groups")
	f.IntVar(&runPreset.TestSize, "test-size", model.DefaultTestSize, "count of test groups")
	f.Int64Var(&runPreset.Seed, "seed", 0, "random state")
	f.StringSliceVar(&runPreset.Descriptors, "descriptors", nil, "descriptors to train on, all if empty")
	f.StringVar(&runPreset.Suffix, "suffix", "", "appended to the result name")
	f.IntVar(&runPreset.Forest.Estimators, "estimators", model.DefaultEstimators, "count of trees")
	f.IntVar(&runPreset.Forest.Jobs, "jobs", 0, "parallel tree builders, all CPUs if 0")
	f.IntVar(&runPreset.Search.MinFeatures, "min-features", model.DefaultMinFeatures, "grid search lower max_features bound")
	f.IntVar(&runPreset.Search.MaxFeatures, "max-features", model.DefaultMaxFeatures, "grid search upper max_features bound, exclusive")
	_ = runCmd.MarkFlagRequired("data")

	sweepCmd.Flags().String("config", "", "sweep definition YAML")
	sweepCmd.Flags().Int64Slice("seed", nil, "override seeds of the sweep")
	sweepCmd.Flags().Bool("keep-going", false, "log and skip failed runs")
}
