package main

import (
	"github.com/nlplab-oss/ccgchart/ccgerr"
	"github.com/nlplab-oss/ccgchart/diag"
	"github.com/nlplab-oss/ccgchart/driver"
	"github.com/nlplab-oss/ccgchart/model"
	"github.com/nlplab-oss/ccgchart/scorer"
)

// collaborators bundles everything loaded once from a configuration file
// and safely shared read-only across many driver.Driver instances: the
// weight table, the optional neural predictor, and the optional
// diagnostics sink. A fresh scorer.Scorer (which owns a mutable scratch
// buffer) and driver.Driver are built per call to newDriver, so each
// goroutine in a parallel.Pool gets its own.
type collaborators struct {
	cfg     *model.Config
	rules   model.Rules
	feats   model.Features
	weights model.Weights
	depNN   model.DepNN
	sink    diag.Sink
}

// loadCollaborators reads the configuration at path and opens its weight
// table and (if configured) diagnostics sink, using the Rules/Features/
// DepNNLoader registered via RegisterCollaborators. The returned cleanup
// closes every opened resource in reverse order; callers must defer it.
func loadCollaborators(configPath string) (*collaborators, func(), error) {
	if registeredRules == nil || registeredFeatures == nil {
		return nil, nil, ccgerr.New(ccgerr.Config, "no grammar rule engine/feature extractor registered; an embedding package must call RegisterCollaborators before Execute")
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	var weights model.Weights = model.NewMapWeights(nil, cfg.DepNNWeight)
	if cfg.WeightsPath != "" {
		mw, err := model.OpenMmapWeights(cfg.WeightsPath)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		weights = mw
		closers = append(closers, mw.Close)
	}

	var depNN model.DepNN
	if cfg.DepNNModelPath != "" {
		if registeredDepNN == nil {
			cleanup()
			return nil, nil, ccgerr.New(ccgerr.Config, "config names depNNModelPath %s but no DepNNLoader was registered", cfg.DepNNModelPath)
		}
		predictor, err := registeredDepNN(cfg.DepNNModelPath)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cached, err := model.NewCachedDepNN(predictor, 4096)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		depNN = cached
	}

	var sink diag.Sink
	if cfg.DiagPath != "" {
		s, err := diag.OpenSQLiteSink(cfg.DiagPath)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		sink = s
		closers = append(closers, s.Close)
	}

	return &collaborators{
		cfg:     cfg,
		rules:   registeredRules,
		feats:   registeredFeatures,
		weights: weights,
		depNN:   depNN,
		sink:    sink,
	}, cleanup, nil
}

// newDriver builds a fresh Driver (its own Scorer, chart and scratch
// buffers) sharing this collaborators set's read-only Rules/Weights/DepNN/
// Features, so bench's sentence-level parallel workers stay isolated from
// each other.
func (c *collaborators) newDriver() *driver.Driver {
	sc := scorer.New(c.feats, c.weights, c.depNN, nil)
	d := driver.New(c.cfg, c.rules, sc, driver.Hooks{})
	d.Diag = c.sink
	return d
}
