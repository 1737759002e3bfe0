package main

import (
	"fmt"
	"os"

	"github.com/nlplab-oss/ccgchart/dependency"
	"github.com/nlplab-oss/ccgchart/driver"
	"github.com/nlplab-oss/ccgchart/supercat"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	config *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <sentence file path>",
		Short:   "Parse a single sentence and print its best dependencies",
		Example: `  ccgchart parse --config ccgchart.yaml sentence.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.config = cmd.Flags().StringP("config", "c", "ccgchart.yaml", "configuration file path")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	collab, cleanup, err := loadCollaborators(*parseFlags.config)
	if err != nil {
		return fmt.Errorf("cannot load configuration: %w", err)
	}
	defer cleanup()

	sentence, err := (jsonSentenceLoader{}).Load(args[0])
	if err != nil {
		return err
	}

	d := collab.newDriver()
	res, err := d.ParseSentence(sentence)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "outcome: %v\n", res.Outcome)
	for _, dep := range resultDeps(res) {
		fmt.Fprintln(os.Stdout, dep.String())
	}
	return nil
}

// resultDeps extracts the filled-dependency set of a parse Result: the
// full derivation under the root cell's best supercategory when Parsed, or
// the skimmer's concatenation when Exhausted.
func resultDeps(res *driver.Result) []dependency.FilledDependency {
	switch res.Outcome {
	case driver.Parsed:
		return collectDeps(res.Chart.Root().Best())
	case driver.Exhausted:
		return res.SkimmedDeps
	default:
		return nil
	}
}

func collectDeps(node *supercat.SuperCategory) []dependency.FilledDependency {
	if node == nil {
		return nil
	}
	deps := append([]dependency.FilledDependency{}, node.FilledDeps...)
	deps = append(deps, collectDeps(node.Left)...)
	deps = append(deps, collectDeps(node.Right)...)
	return deps
}
