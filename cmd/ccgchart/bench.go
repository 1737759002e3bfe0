package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/nlplab-oss/ccgchart/driver"
	"github.com/nlplab-oss/ccgchart/parallel"
	"github.com/spf13/cobra"
)

var benchFlags = struct {
	config  *string
	workers *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "bench <sentences directory>",
		Short:   "Parse every sentence file in a directory across a worker pool",
		Example: `  ccgchart bench --config ccgchart.yaml --workers 4 sentences/`,
		Args:    cobra.ExactArgs(1),
		RunE:    runBench,
	}
	benchFlags.config = cmd.Flags().StringP("config", "c", "ccgchart.yaml", "configuration file path")
	benchFlags.workers = cmd.Flags().IntP("workers", "w", 0, "worker count (default: number of CPUs)")
	rootCmd.AddCommand(cmd)
}

type benchResult struct {
	outcome driver.Outcome
	millis  float64
}

func runBench(cmd *cobra.Command, args []string) error {
	collab, cleanup, err := loadCollaborators(*benchFlags.config)
	if err != nil {
		return fmt.Errorf("cannot load configuration: %w", err)
	}
	defer cleanup()

	paths, err := listSentenceFiles(args[0])
	if err != nil {
		return err
	}

	results := make([]benchResult, len(paths))
	loader := jsonSentenceLoader{}
	jobs := make([]parallel.Job, len(paths))
	for i, p := range paths {
		i, p := i, p
		jobs[i] = parallel.Job{Index: i, Run: func() {
			results[i] = parseOneForBench(collab, loader, p)
		}}
	}

	pool := parallel.NewPool(*benchFlags.workers)
	defer pool.Close()
	if err := parallel.RunAll(context.Background(), pool, jobs); err != nil {
		return err
	}

	printBenchSummary(os.Stdout, paths, results)
	return nil
}

func parseOneForBench(collab *collaborators, loader jsonSentenceLoader, path string) benchResult {
	sentence, err := loader.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skipping %s: %v\n", path, err)
		return benchResult{outcome: driver.Exhausted}
	}
	d := collab.newDriver()
	start := time.Now()
	res, err := d.ParseSentence(sentence)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error for %s: %v\n", path, err)
		return benchResult{outcome: driver.Exhausted}
	}
	return benchResult{outcome: res.Outcome, millis: float64(elapsed) / float64(time.Millisecond)}
}

func listSentenceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ccgchart: cannot list sentences directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func printBenchSummary(w *os.File, paths []string, results []benchResult) {
	counts := map[driver.Outcome]int{}
	var totalMillis float64
	for _, r := range results {
		counts[r.outcome]++
		totalMillis += r.millis
	}
	fmt.Fprintf(w, "parsed %d sentences\n", len(paths))
	for _, o := range []driver.Outcome{driver.Parsed, driver.SkippedMaxWords, driver.SkippedMaxSuperCats, driver.Exhausted} {
		fmt.Fprintf(w, "  %-20v %d\n", o, counts[o])
	}
	if len(paths) > 0 {
		fmt.Fprintf(w, "mean latency: %.2fms\n", totalMillis/float64(len(paths)))
	}
}
