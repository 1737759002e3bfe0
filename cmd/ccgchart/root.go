package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ccgchart",
	Short: "Parse sentences with a statistical CCG chart parser",
	Long: `ccgchart drives the CKY chart parser over pre-tagged sentences:
- Parses a single sentence and prints its best derivation's dependencies.
- Benchmarks a directory of sentences across a worker pool.
- Runs a golden-fixture test suite against a configured parser.
- Describes a resolved configuration and its weight table.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
