// Package counter implements the frequent-extension counting step of GISP
// mining: given a projected database, it applies the four interval
// constraints, collapses duplicate occurrences within a sequence, and
// returns the (bucket, item) extensions whose support meets the minimum.
package counter

import (
	"github.com/pkg/errors"

	"github.com/grailbio/gisp/isdb"
	"github.com/grailbio/gisp/pdb"
)

// Constraints bounds the four interval constraints from the mining
// specification. Use a very large MaxInterval/MaxWholeInterval to express
// "no upper bound"; MinInterval/MinWholeInterval default to zero for "no
// lower bound".
type Constraints struct {
	MinInterval      int
	MaxInterval      int
	MinWholeInterval int
	MaxWholeInterval int
}

func (c Constraints) accepts(r pdb.Row) bool {
	return r.Interval >= c.MinInterval && r.Interval <= c.MaxInterval &&
		r.WholeInterval >= c.MinWholeInterval && r.WholeInterval <= c.MaxWholeInterval
}

// Extension is one frequent (Bucket, Item) pair together with the number
// of distinct sequences it occurs in.
type Extension struct {
	Bucket  int
	Item    string
	Support int
}

// key groups rows into extension candidates.
type key struct {
	item   string
	bucket int
}

// Count bucketizes p with itemize, applies c to every row, and returns the
// (bucket, item) extensions whose distinct-SID count is >= minSupport,
// along with the bucketized PDB so the caller can reuse it for projection
// without recomputing buckets. itemize is user-supplied and the only
// callback the engine does not control; a panic inside it is recovered and
// reported as an error rather than crashing the mining run.
func Count(p pdb.PDB, itemize func(int) int, c Constraints, minSupport int) (bucketed pdb.BucketedPDB, extensions []Extension, err error) {
	bucketed, err = bucketizeSafe(p, itemize)
	if err != nil {
		return pdb.BucketedPDB{}, nil, err
	}

	groups := make(map[key]map[int]struct{})
	for _, row := range bucketed.Rows {
		if !c.accepts(row.Row) {
			continue
		}
		k := key{item: row.Item, bucket: row.Bucket}
		sids, ok := groups[k]
		if !ok {
			sids = make(map[int]struct{})
			groups[k] = sids
		}
		sids[row.SID] = struct{}{}
	}

	for k, sids := range groups {
		if len(sids) >= minSupport {
			extensions = append(extensions, Extension{Bucket: k.bucket, Item: k.item, Support: len(sids)})
		}
	}
	return bucketed, extensions, nil
}

func bucketizeSafe(p pdb.PDB, itemize func(int) int) (bp pdb.BucketedPDB, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("counter: itemize panicked: %v", r)
		}
	}()
	bp = p.Bucketize(itemize)
	return bp, nil
}

// CountHeads counts distinct-SID support per item across an ISDB,
// unfiltered by any interval constraint, since the pattern head has no
// preceding prefix item and no span to constrain. Every returned Extension
// has Bucket 0, matching the convention that a pattern's head always
// carries bucket 0.
func CountHeads(table isdb.Table, minSupport int) []Extension {
	sids := make(map[string]map[int]struct{})
	for _, row := range table {
		s, ok := sids[row.Item]
		if !ok {
			s = make(map[int]struct{})
			sids[row.Item] = s
		}
		s[row.SID] = struct{}{}
	}

	var extensions []Extension
	for item, s := range sids {
		if len(s) >= minSupport {
			extensions = append(extensions, Extension{Bucket: 0, Item: item, Support: len(s)})
		}
	}
	return extensions
}
