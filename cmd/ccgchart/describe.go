package main

import (
	"fmt"
	"os"

	"github.com/nlplab-oss/ccgchart/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe <config file path>",
		Short:   "Print a resolved configuration and its weight table summary",
		Example: `  ccgchart describe ccgchart.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(args[0])
	if err != nil {
		return err
	}

	w := os.Stdout
	fmt.Fprintf(w, "cubePruning:      %v\n", cfg.CubePruning)
	fmt.Fprintf(w, "beamSize:         %v\n", cfg.BeamSize)
	fmt.Fprintf(w, "beta:             %v\n", cfg.Beta)
	fmt.Fprintf(w, "lexicalBeta:      %v\n", cfg.LexicalBeta)
	fmt.Fprintf(w, "maxWords:         %v\n", cfg.MaxWords)
	fmt.Fprintf(w, "maxSuperCats:     %v\n", cfg.MaxSuperCats)
	fmt.Fprintf(w, "altMarkedup:      %v\n", cfg.AltMarkedup)
	fmt.Fprintf(w, "eisnerNormalForm: %v\n", cfg.EisnerNormalForm)
	fmt.Fprintf(w, "depNNWeight:      %v\n", cfg.DepNNWeight)
	fmt.Fprintf(w, "weightsPath:      %v\n", displayOrNone(cfg.WeightsPath))
	fmt.Fprintf(w, "depNNModelPath:   %v\n", displayOrNone(cfg.DepNNModelPath))
	fmt.Fprintf(w, "diagPath:         %v\n", displayOrNone(cfg.DiagPath))

	if cfg.WeightsPath == "" {
		return nil
	}
	weights, err := model.OpenMmapWeights(cfg.WeightsPath)
	if err != nil {
		return err
	}
	defer weights.Close()
	fmt.Fprintln(w, "---")
	printWeightsSummary(w, weights)
	return nil
}

func displayOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func printWeightsSummary(w *os.File, weights *model.MmapWeights) {
	min, max, sum, count := weights.Stats()
	fmt.Fprintf(w, "weight records: %d\n", count)
	if count == 0 {
		return
	}
	fmt.Fprintf(w, "min weight:     %v\n", min)
	fmt.Fprintf(w, "max weight:     %v\n", max)
	fmt.Fprintf(w, "mean weight:    %v\n", sum/float64(count))
}
