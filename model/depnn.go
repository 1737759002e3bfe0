package model

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedDepNN wraps a DepNN collaborator with an LRU cache keyed by the
// attribute tuple. Cube pruning repeatedly re-expands neighbouring frontier
// pairs, which tends to re-request the same dependency's
// softmax prediction; caching avoids re-scoring it. Grounded on
// cognicore-io-korel's use of github.com/hashicorp/golang-lru/v2, pulled
// into that pack's dependency graph for exactly this kind of
// repeated-lookup cache.
type CachedDepNN struct {
	inner DepNN
	cache *lru.Cache[DepAttrs, float64]
}

// NewCachedDepNN wraps inner with an LRU cache holding up to capacity
// distinct attribute tuples.
func NewCachedDepNN(inner DepNN, capacity int) (*CachedDepNN, error) {
	c, err := lru.New[DepAttrs, float64](capacity)
	if err != nil {
		return nil, err
	}
	return &CachedDepNN{inner: inner, cache: c}, nil
}

// PredictSoft returns the cached prediction for attrs if present, otherwise
// delegates to the wrapped scorer and caches the result. Errors are never
// cached.
func (c *CachedDepNN) PredictSoft(attrs DepAttrs) (float64, error) {
	if p, ok := c.cache.Get(attrs); ok {
		return p, nil
	}
	p, err := c.inner.PredictSoft(attrs)
	if err != nil {
		return 0, err
	}
	c.cache.Add(attrs, p)
	return p, nil
}
