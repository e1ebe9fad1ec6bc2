package gisp

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"

	"github.com/grailbio/gisp/counter"
	"github.com/grailbio/gisp/isdb"
	"github.com/grailbio/gisp/pdb"
)

// MineSubpatterns runs the recursive miner directly on a PDB, entering the
// recursion below the head: it applies opts's interval constraints and does
// not prepend any head item. This is the direct entry point spec.md calls
// out for testing the recursive engine in isolation from the Flattener and
// the head special-case.
//
// p is treated as consumed: MineSubpatterns and everything it calls may
// reuse p's backing rows. Callers needing p afterward must call p.Clone()
// first.
func MineSubpatterns(p pdb.PDB, opts Options) ([]Pattern, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return mineSubpatterns(p, opts)
}

// mine seeds the recursion from an ISDB (level 0, the pattern head). The
// head has no predecessor and no span, so interval constraints do not
// apply: only MinSupport filters candidate items.
func mine(table isdb.Table, opts Options) ([]Pattern, error) {
	heads := counter.CountHeads(table, opts.MinSupport)
	if log.At(log.Debug) {
		log.Debug.Printf("gisp: level 1: %d rows, %d frequent heads", len(table), len(heads))
	}

	extend := func(h counter.Extension) ([]Pattern, error) {
		child := pdb.ProjectLevel1(table, h.Item)
		return extendWithChild(h.Bucket, h.Item, h.Support, child, opts)
	}

	return fanOut(heads, extend, opts.Parallel)
}

// mineSubpatterns implements the recursive step: count this frame's
// extensions, emit one pattern per extension, and recurse into each
// extension's projected child.
func mineSubpatterns(p pdb.PDB, opts Options) ([]Pattern, error) {
	if p.Len() == 0 {
		return nil, nil
	}

	constraints := counter.Constraints{
		MinInterval:      opts.MinInterval,
		MaxInterval:      opts.MaxInterval,
		MinWholeInterval: opts.MinWholeInterval,
		MaxWholeInterval: opts.MaxWholeInterval,
	}
	bucketed, extensions, err := counter.Count(p, opts.Itemize, constraints, opts.MinSupport)
	if err != nil {
		return nil, err
	}
	if log.At(log.Debug) {
		log.Debug.Printf("gisp: frame of %d rows: %d frequent extensions", p.Len(), len(extensions))
	}

	extend := func(e counter.Extension) ([]Pattern, error) {
		child := bucketed.Project(e.Bucket, e.Item)
		return extendWithChild(e.Bucket, e.Item, e.Support, child, opts)
	}

	return fanOut(extensions, extend, opts.Parallel)
}

// extendWithChild emits the pattern for one (bucket, item) extension and
// prepends it to every pattern mined from the extension's projected child.
func extendWithChild(bucket int, item string, support int, child pdb.PDB, opts Options) ([]Pattern, error) {
	sub, err := mineSubpatterns(child, opts)
	if err != nil {
		return nil, err
	}
	patterns := make([]Pattern, 0, 1+len(sub))
	patterns = append(patterns, Pattern{Sequence: []Step{{Bucket: bucket, Item: item}}, Support: support})
	for _, s := range sub {
		seq := make([]Step, 0, 1+len(s.Sequence))
		seq = append(seq, Step{Bucket: bucket, Item: item})
		seq = append(seq, s.Sequence...)
		patterns = append(patterns, Pattern{Sequence: seq, Support: s.Support})
	}
	return patterns, nil
}

// fanOut drives extend over every extension, either sequentially or (when
// parallel is set) concurrently via traverse.Each over the disjoint
// subtrees rooted at each extension.
func fanOut(extensions []counter.Extension, extend func(counter.Extension) ([]Pattern, error), parallel bool) ([]Pattern, error) {
	if len(extensions) == 0 {
		return nil, nil
	}

	if !parallel || len(extensions) == 1 {
		var patterns []Pattern
		for _, e := range extensions {
			p, err := extend(e)
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, p...)
		}
		return patterns, nil
	}

	results := make([][]Pattern, len(extensions))
	err := traverse.Each(len(extensions), func(i int) error {
		p, err := extend(extensions[i])
		if err != nil {
			return err
		}
		results[i] = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	var patterns []Pattern
	for _, p := range results {
		patterns = append(patterns, p...)
	}
	return patterns, nil
}
