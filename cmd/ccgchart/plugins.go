package main

import "github.com/nlplab-oss/ccgchart/model"

// DepNNLoader constructs the optional neural dependency predictor from the
// path named by Config.DepNNModelPath. Its on-disk format is opaque to this
// package; an embedder supplies a loader only if it ships a
// trained model.
type DepNNLoader func(path string) (model.DepNN, error)

var (
	registeredRules    model.Rules
	registeredFeatures model.Features
	registeredDepNN    DepNNLoader
)

// RegisterCollaborators installs the grammar-specific Rules and Features
// implementations the parse/bench/test commands drive, plus an
// optional neural dependency model loader. It must run before Execute,
// typically from an embedding main package's init — ccgchart itself never
// constructs a grammar, since the rule engine and feature extractor are
// external collaborators by design, not part of this repository.
func RegisterCollaborators(rules model.Rules, features model.Features, depNN DepNNLoader) {
	registeredRules = rules
	registeredFeatures = features
	registeredDepNN = depNN
}
