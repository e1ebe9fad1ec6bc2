// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gisp mines Generalized Interval-extended Sequence Patterns:
// frequent patterns over sequences of timestamped itemsets, where the time
// offset between pattern steps is itself part of the pattern alphabet.
//
// The engine is a prefix-projection miner in the PrefixSpan family,
// extended so each step pairs an item with a bucketed time offset relative
// to the preceding step, and so four interval constraints prune the
// recursive search. See the isdb, pdb, and counter subpackages for the
// three pieces of the recursive core; this package binds them into the
// public Mine entry point.
package gisp

import (
	"math"

	"github.com/grailbio/base/errors"

	"github.com/grailbio/gisp/isdb"
)

// Unbounded represents +infinity for MaxInterval/MaxWholeInterval.
const Unbounded = math.MaxInt32

// Itemize maps a raw interval to a bucket index. It is called many times
// per distinct interval value during a mining run; callers with an
// expensive itemize function should memoize it themselves. Itemize is
// engine-opaque: the engine assumes nothing about monotonicity.
//
// Itemize is an alias (not a defined type) so that the ready-made
// itemize.FixedBucket/itemize.Log2Bucket constructors can return this exact
// type without requiring callers to convert.
type Itemize = func(interval int) int

// Itemset and Sequence describe the public input shape: a sequence is an
// ordered list of itemsets, each itemset a set of items observed at the
// same interval.
type Itemset = isdb.Itemset
type Sequence = isdb.Sequence

// Step is one (bucket, item) pair in a mined pattern.
type Step struct {
	Bucket int
	Item   string
}

// Pattern is a frequent interval-extended sequence pattern. In patterns
// returned by Mine, Sequence[0] always has Bucket 0, since a pattern's head
// has no predecessor to measure an offset from. MineSubpatterns starts below
// the head, so the first step of its patterns carries the bucket of its
// offset within the postfix. The order patterns are returned in is
// unspecified; callers that need a canonical order must sort themselves.
type Pattern struct {
	Sequence []Step
	Support  int
}

// Options configures a mining run. The zero value is not directly usable
// (MaxInterval and MaxWholeInterval default to 0, not +infinity); use
// NewOptions to get sane defaults, then override the fields you care
// about.
type Options struct {
	// Itemize buckets a raw interval. Required.
	Itemize Itemize
	// MinSupport is the minimum number of distinct sequences a pattern must
	// occur in. Required, must be >= 1.
	MinSupport int
	// MinInterval and MaxInterval bound the raw interval between adjacent
	// pattern steps. MinInterval defaults to 0 ("no lower bound").
	MinInterval int
	MaxInterval int
	// MinWholeInterval and MaxWholeInterval bound the raw offset between
	// the pattern's head and any later step.
	MinWholeInterval int
	MaxWholeInterval int
	// Parallel fans recursion out over sibling children with
	// github.com/grailbio/base/traverse instead of recursing sequentially.
	// The subtrees rooted at distinct extensions share no mutable state, so
	// this is always safe, but it is opt-in: the sequential path is
	// simpler to reason about and sufficient for most corpus sizes.
	Parallel bool
}

// NewOptions returns Options with MaxInterval and MaxWholeInterval set to
// Unbounded, MinInterval and MinWholeInterval at their zero-value default
// of 0, and the given required fields set.
func NewOptions(itemize Itemize, minSupport int) Options {
	return Options{
		Itemize:          itemize,
		MinSupport:       minSupport,
		MaxInterval:      Unbounded,
		MaxWholeInterval: Unbounded,
	}
}

// Validate reports a configuration error, if any: a nil Itemize, a
// non-positive MinSupport, or an inverted bound.
func (o Options) Validate() error {
	if o.Itemize == nil {
		return errors.New("gisp: Options.Itemize must not be nil")
	}
	if o.MinSupport < 1 {
		return errors.New("gisp: Options.MinSupport must be >= 1")
	}
	if o.MinInterval > o.MaxInterval {
		return errors.New("gisp: Options.MinInterval must be <= MaxInterval")
	}
	if o.MinWholeInterval > o.MaxWholeInterval {
		return errors.New("gisp: Options.MinWholeInterval must be <= MaxWholeInterval")
	}
	return nil
}

// Transform flattens sequences into an ISDB, exposed directly per the
// engine's external interface contract for tests and alternate frontends.
func Transform(sequences []Sequence) isdb.Table {
	return isdb.Transform(sequences)
}

// Mine mines every pattern in sequences whose support meets
// opts.MinSupport, subject to opts's interval constraints. It returns a
// configuration error (via Options.Validate) before doing any work if opts
// is malformed.
func Mine(sequences []Sequence, opts Options) ([]Pattern, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return mine(Transform(sequences), opts)
}
