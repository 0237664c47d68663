package power

import (
	"github.com/hupe1980/pagerank/resource"
)

// DanglingPolicy decides what happens to the rank of valid nodes without
// outgoing edges.
type DanglingPolicy int

const (
	// DanglingDrop discards dangling mass. Total valid mass shrinks by the
	// dangling nodes' share every step.
	DanglingDrop DanglingPolicy = iota
	// DanglingRedistribute spreads dangling mass uniformly over valid
	// nodes before damping, the textbook PageRank treatment.
	DanglingRedistribute
)

func (p DanglingPolicy) String() string {
	if p == DanglingRedistribute {
		return "redistribute"
	}
	return "drop"
}

// DefaultTaxRate corresponds to a damping factor beta of 0.8.
const DefaultTaxRate = 0.2

// minShardEdges keeps shards large enough to amortize an extra accumulator.
var minShardEdges = 1 << 14

// Options configures an Engine.
type Options struct {
	// TaxRate is the fraction of mass redistributed uniformly each step,
	// 1 - beta. Must be in [0, 1].
	TaxRate float64
	// Dangling selects the dangling-node policy.
	Dangling DanglingPolicy
	// Workers is the number of accumulation shards. Values < 2 run the
	// sequential multiply.
	Workers int
	// Resources bounds worker slots and shard accumulator memory.
	Resources *resource.Controller
}

// Option configures an Engine.
type Option func(*Options)

// WithTaxRate sets the tax rate (1 - beta).
func WithTaxRate(rate float64) Option {
	return func(o *Options) {
		o.TaxRate = rate
	}
}

// WithDanglingPolicy sets the dangling-node policy.
func WithDanglingPolicy(p DanglingPolicy) Option {
	return func(o *Options) {
		o.Dangling = p
	}
}

// WithWorkers sets the number of accumulation shards.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithResources bounds workers and accumulator memory through rc.
func WithResources(rc *resource.Controller) Option {
	return func(o *Options) {
		o.Resources = rc
	}
}
