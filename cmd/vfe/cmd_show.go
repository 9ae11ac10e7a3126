package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go-ml.dev/pkg/vacancy/model"
	"go-ml.dev/pkg/vacancy/store"
)

var showTop int

var showCmd = &cobra.Command{
	Use:   "show <result.json>...",
	Short: "Print metrics of result files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			s, err := model.ReadStatistics(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			describe(cmd.OutOrStdout(), s, showTop)
		}
		return nil
	},
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Query the SQLite result index",
}

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		x, err := openIndex(cmd)
		if err != nil {
			return err
		}
		defer x.Close()
		runs, err := x.List()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCHARGE\tRMSE TEST\tMAE TEST\tR2 TEST\tCREATED")
		for _, r := range runs {
			fmt.Fprintf(w, "%v\t%v\t%.4f\t%.4f\t%.4f\t%v\n",
				r.Name, r.Charge, r.RmseTest, r.MaeTest, r.R2Test, r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var indexBestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the best run of a charge subset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		x, err := openIndex(cmd)
		if err != nil {
			return err
		}
		defer x.Close()
		charge, _ := cmd.Flags().GetString("charge")
		metric, _ := cmd.Flags().GetString("metric")
		r, err := x.Best(charge, metric)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), r.Name)
		describe(cmd.OutOrStdout(), r.Statistics, showTop)
		return nil
	},
}

func openIndex(cmd *cobra.Command) (*store.Index, error) {
	path, _ := cmd.Flags().GetString("index")
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return store.Open(path)
}

func describe(out io.Writer, s *model.Statistics, top int) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "  regressor\t%v\n", s.Regressor)
	fmt.Fprintf(w, "  random state\t%d\n", s.RandomState)
	fmt.Fprintf(w, "  groups\t%d train / %d test\n", s.TrainSize, s.TestSize)
	fmt.Fprintf(w, "  samples\t%d train / %d test\n", s.NTrain, s.NTest)
	fmt.Fprintf(w, "  \tRMSE\tMAE\tR2\n")
	fmt.Fprintf(w, "  train\t%.4f\t%.4f\t%.4f\n", s.RmseTrain, s.MaeTrain, s.R2Train)
	fmt.Fprintf(w, "  test\t%.4f\t%.4f\t%.4f\n", s.RmseTest, s.MaeTest, s.R2Test)
	if s.BestParams != nil {
		fmt.Fprintf(w, "  best params\t%v\n", s.BestParams)
	}
	for i, x := range s.Importances {
		if i >= top {
			break
		}
		fmt.Fprintf(w, "  importance\t%v\t%.4f\n", x.Feature, x.Weight)
	}
	w.Flush()
}

func init() {
	showCmd.Flags().IntVar(&showTop, "top", 10, "count of importances to print")
	indexCmd.PersistentFlags().String("index", "results/index.sqlite", "SQLite result index")
	indexBestCmd.Flags().String("charge", "charge0", "charge subset")
	indexBestCmd.Flags().String("metric", "rmse_test", "rmse_test, mae_test or r2_test")
	indexBestCmd.Flags().IntVar(&showTop, "top", 10, "count of importances to print")
	indexCmd.AddCommand(indexListCmd, indexBestCmd)
}
