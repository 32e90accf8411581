// Package analytics computes dashboard metrics over a parsed chat export.
//
// Every query takes a Filter and a chatlog.RecordSet, narrows the set to the
// filter's sender (no narrowing for Overall) and returns plain data. Queries
// never mutate the record set, so they may run in any order, repeatedly, and
// from concurrent requests.
package analytics

import (
	"github.com/MikeSquared-Agency/chatlens/internal/chatlog"
	"github.com/MikeSquared-Agency/chatlens/internal/lexicon"
)

// Filter selects the sender a query is narrowed to.
type Filter string

// Overall selects every sender.
const Overall Filter = chatlog.OverallOption

// IsOverall reports whether the filter selects every sender.
func (f Filter) IsOverall() bool {
	return f == Overall || f == ""
}

func (f Filter) narrow(rs chatlog.RecordSet) chatlog.RecordSet {
	if f.IsOverall() {
		return rs
	}
	return rs.BySender(string(f))
}

// Options bounds the size of ranked results.
type Options struct {
	TopUsers   int // most active users bar chart
	TopWords   int // most common words table
	CloudWords int // word cloud tags
}

// DefaultOptions returns the limits used by the dashboard.
func DefaultOptions() Options {
	return Options{
		TopUsers:   5,
		TopWords:   20,
		CloudWords: 100,
	}
}

// Engine runs analytic queries with a fixed lexicon. It holds no per-upload state.
type Engine struct {
	lex  *lexicon.Lexicon
	opts Options
}

// New creates an engine. Non-positive limits fall back to DefaultOptions.
func New(lex *lexicon.Lexicon, opts Options) *Engine {
	def := DefaultOptions()
	if opts.TopUsers <= 0 {
		opts.TopUsers = def.TopUsers
	}
	if opts.TopWords <= 0 {
		opts.TopWords = def.TopWords
	}
	if opts.CloudWords <= 0 {
		opts.CloudWords = def.CloudWords
	}
	return &Engine{lex: lex, opts: opts}
}

// Options returns the engine's limits.
func (e *Engine) Options() Options {
	return e.opts
}

// WithLimits returns an engine sharing e's lexicon whose limits are replaced by
// the positive fields of o. Used for per-request sizes such as ?top=.
func (e *Engine) WithLimits(o Options) *Engine {
	opts := e.opts
	if o.TopUsers > 0 {
		opts.TopUsers = o.TopUsers
	}
	if o.TopWords > 0 {
		opts.TopWords = o.TopWords
	}
	if o.CloudWords > 0 {
		opts.CloudWords = o.CloudWords
	}
	return &Engine{lex: e.lex, opts: opts}
}

// LabelCount is one row of a frequency table.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
