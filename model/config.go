package model

import (
	"fmt"
	"os"

	"github.com/nlplab-oss/ccgchart/ccgerr"
	"gopkg.in/yaml.v3"
)

// Config is the parser's accepted configuration surface: nothing beyond
// these fields is a valid option. It is loaded from a YAML file the
// way cognicore-io-korel's pkg/korel/config package loads its Taxonomy and
// Stoplist documents.
type Config struct {
	CubePruning bool `yaml:"cubePruning"`
	BeamSize    int  `yaml:"beamSize"`

	// Beta is the log-space cell cutoff: a supercategory
	// scoring below max+Beta is pruned. LexicalBeta is the separate,
	// tighter cutoff the loader applies to leaf supertag candidates
	//.
	Beta        float64 `yaml:"beta"`
	LexicalBeta float64 `yaml:"lexicalBeta"`

	MaxWords     int `yaml:"maxWords"`
	MaxSuperCats int `yaml:"maxSuperCats"`

	// AltMarkedup and EisnerNormalForm are grammar loader flags, opaque
	// to this package; they are threaded through to the Rules
	// implementation unexamined.
	AltMarkedup      bool `yaml:"altMarkedup"`
	EisnerNormalForm bool `yaml:"eisnerNormalForm"`

	DepNNWeight float64 `yaml:"depNNWeight"`

	WeightsPath    string `yaml:"weightsPath"`
	DepNNModelPath string `yaml:"depNNModelPath"`

	// DiagPath, when non-empty, is where the CLI opens a diag.SQLiteSink.
	// Left empty, parses run with no diagnostics sink attached.
	DiagPath string `yaml:"diagPath"`
}

// LoadConfig reads and validates a Config from a YAML file. A malformed
// Config (wrong arity, negative beam size) is a precondition violation
// surfaced at call time, "Configuration invalid".
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ccgerr.Wrap(ccgerr.Collaborator, fmt.Errorf("model: cannot read config %s: %w", path, err))
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, ccgerr.Wrap(ccgerr.Config, fmt.Errorf("model: cannot parse config %s: %w", path, err))
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("model: invalid config %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks the preconditions placed on the configuration
// surface: a beam size must be non-negative (0 disables the cap), word and
// supercategory limits must be positive, and beta cutoffs must not be
// positive (a positive log-space offset would admit scores above the
// maximum, which cannot occur).
func (c *Config) Validate() error {
	if c.BeamSize < 0 {
		return ccgerr.New(ccgerr.Config, "beamSize must be >= 0, got %d", c.BeamSize)
	}
	if c.MaxWords <= 0 {
		return ccgerr.New(ccgerr.Config, "maxWords must be > 0, got %d", c.MaxWords)
	}
	if c.MaxSuperCats <= 0 {
		return ccgerr.New(ccgerr.Config, "maxSuperCats must be > 0, got %d", c.MaxSuperCats)
	}
	if c.Beta > 0 {
		return ccgerr.New(ccgerr.Config, "beta must be <= 0 in log space, got %v", c.Beta)
	}
	if c.LexicalBeta > 0 {
		return ccgerr.New(ccgerr.Config, "lexicalBeta must be <= 0 in log space, got %v", c.LexicalBeta)
	}
	return nil
}
