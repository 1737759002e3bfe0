package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nlplab-oss/ccgchart/driver"
	"github.com/nlplab-oss/ccgchart/tester"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	config *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <cases directory>",
		Short:   "Run a golden-fixture test suite against a configured parser",
		Example: `  ccgchart test --config ccgchart.yaml cases/`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTest,
	}
	testFlags.config = cmd.Flags().StringP("config", "c", "ccgchart.yaml", "configuration file path")
	rootCmd.AddCommand(cmd)
}

// caseFile is the on-disk shape one golden fixture decodes into: a
// sentence (jsonSentenceFile shape) plus the dependency set its parse is
// expected to produce.
type caseFile struct {
	Name         string           `json:"name"`
	Sentence     jsonSentenceFile `json:"sentence"`
	WantDeps     []string         `json:"wantDeps"`
	WantOutcome  string           `json:"wantOutcome"`
	CheckOutcome bool             `json:"checkOutcome"`
}

func runTest(cmd *cobra.Command, args []string) error {
	collab, cleanup, err := loadCollaborators(*testFlags.config)
	if err != nil {
		return fmt.Errorf("cannot load configuration: %w", err)
	}
	defer cleanup()

	cases, loadErrs := listTestCases(args[0])
	if len(loadErrs) > 0 {
		for _, e := range loadErrs {
			fmt.Fprintln(os.Stderr, e)
		}
		return errors.New("cannot run test: malformed fixture(s)")
	}

	runner := &tester.Runner{Driver: collab.newDriver()}
	results := runner.Run(cases)
	failed := false
	for _, r := range results {
		fmt.Fprintln(os.Stdout, r)
		if !r.Passed() {
			failed = true
		}
	}
	if failed {
		return errors.New("test failed")
	}
	return nil
}

// listTestCases walks dir for *.json fixtures and decodes each into a
// tester.Case, mirroring vartan's ListTestCases directory-walking idiom.
func listTestCases(dir string) ([]tester.Case, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("ccgchart: cannot list cases directory %s: %w", dir, err)}
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var cases []tester.Case
	var errs []error
	for _, name := range names {
		path := filepath.Join(dir, name)
		c, err := loadCaseFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		cases = append(cases, c)
	}
	return cases, errs
}

func loadCaseFile(path string) (tester.Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tester.Case{}, err
	}
	var cf caseFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return tester.Case{}, err
	}
	c := tester.Case{
		Name:         cf.Name,
		Sentence:     newJSONSentence(&cf.Sentence),
		WantDeps:     cf.WantDeps,
		CheckOutcome: cf.CheckOutcome,
	}
	if cf.CheckOutcome {
		outcome, err := parseOutcome(cf.WantOutcome)
		if err != nil {
			return tester.Case{}, err
		}
		c.WantOutcome = outcome
	}
	return c, nil
}

func parseOutcome(s string) (driver.Outcome, error) {
	for _, o := range []driver.Outcome{driver.Parsed, driver.SkippedMaxWords, driver.SkippedMaxSuperCats, driver.Exhausted} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown wantOutcome %q", s)
}
