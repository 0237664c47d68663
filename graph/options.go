package graph

import (
	"math"

	"github.com/hupe1980/pagerank/resource"
)

// SinkPolicy decides whether destinations that never appear as an edge
// source are part of the valid node set.
type SinkPolicy int

const (
	// SinksExcluded marks only edge sources valid. Sink-only destinations
	// still receive rank mass but are skipped by reports and do not count
	// towards the used-node total.
	SinksExcluded SinkPolicy = iota
	// SinksIncluded marks every referenced node valid. Sink-only nodes
	// become dangling nodes with out-degree zero.
	SinksIncluded
)

func (p SinkPolicy) String() string {
	if p == SinksIncluded {
		return "include"
	}
	return "exclude"
}

// DefaultMaxNodeID is the largest identifier accepted by default.
// The index range must still fit a uint32 length.
const DefaultMaxNodeID = math.MaxUint32 - 1

// Options configures graph construction.
type Options struct {
	// CommentPrefix marks lines to ignore. Default "#".
	CommentPrefix string
	// Sinks selects the sink-only node policy. Default SinksExcluded.
	Sinks SinkPolicy
	// MaxNodeID rejects larger identifiers with a FormatError.
	// Memory is proportional to the identifier range, so this is the
	// guard against a stray huge identifier. Default DefaultMaxNodeID.
	MaxNodeID uint32
	// Resources throttles reads in Load. Nil means unlimited.
	Resources *resource.Controller
}

// Option configures a Builder, Parse or Load.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		CommentPrefix: "#",
		Sinks:         SinksExcluded,
		MaxNodeID:     DefaultMaxNodeID,
	}
}

func applyOptions(optFns []Option) Options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if o.MaxNodeID == 0 || o.MaxNodeID > DefaultMaxNodeID {
		o.MaxNodeID = DefaultMaxNodeID
	}
	return o
}

// WithCommentPrefix sets the comment marker. An empty prefix disables comments.
func WithCommentPrefix(prefix string) Option {
	return func(o *Options) {
		o.CommentPrefix = prefix
	}
}

// WithSinkPolicy sets the sink-only node policy.
func WithSinkPolicy(p SinkPolicy) Option {
	return func(o *Options) {
		o.Sinks = p
	}
}

// WithMaxNodeID caps accepted node identifiers.
func WithMaxNodeID(id uint32) Option {
	return func(o *Options) {
		o.MaxNodeID = id
	}
}

// WithResources throttles ingestion reads through rc.
func WithResources(rc *resource.Controller) Option {
	return func(o *Options) {
		o.Resources = rc
	}
}
