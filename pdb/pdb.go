// Package pdb implements the Postfix DataBase and the prefix-projection
// step of GISP mining: building a child PDB from a parent PDB (or from an
// ISDB, for the first level) with respect to a chosen extension.
package pdb

import "github.com/grailbio/gisp/isdb"

// Row is one row of a Postfix DataBase: an item observed at Interval from
// the current prefix's last item (the postfix's anchor), and at
// WholeInterval from the prefix's head. Rows sharing a PID are contiguous
// and preserve their parent's relative order; PID only needs to be a
// bijection onto postfixes, not a stable identity across levels.
type Row struct {
	SID           int
	PID           int
	Item          string
	Interval      int
	WholeInterval int
}

// PDB is a Postfix DataBase: the collection of postfixes projected with
// respect to a prefix.
type PDB struct {
	Rows []Row
}

// Len reports the number of rows, for callers that want to short-circuit
// on an empty PDB without inspecting Rows directly.
func (p PDB) Len() int { return len(p.Rows) }

// Clone returns a PDB whose Rows slice does not alias p's. Project and the
// miner in package gisp are free to reuse a PDB's backing array once it has been
// projected or counted; callers that need the pre-projection value
// afterward must Clone it first.
func (p PDB) Clone() PDB {
	rows := make([]Row, len(p.Rows))
	copy(rows, p.Rows)
	return PDB{Rows: rows}
}

// BucketedRow adds the itemize-computed Bucket of Interval, materialized by
// the counter package for exactly one recursion level. Bucket is never
// carried across levels: Project rebuilds the child PDB from scratch, and
// the child is bucketed independently by the next counter.Count call.
type BucketedRow struct {
	Row
	Bucket int
}

// BucketedPDB is a PDB with a Bucket column computed for the current
// recursion level. It is produced by Bucketize and consumed by Project (for
// extensions at depth ≥ 2) and by the counting logic in package counter.
type BucketedPDB struct {
	Rows []BucketedRow
}

// Bucketize computes Bucket = itemize(Interval) for every row of p. It does
// not mutate p; the returned BucketedPDB has its own Rows slice.
func (p PDB) Bucketize(itemize func(int) int) BucketedPDB {
	bucketed := make([]BucketedRow, len(p.Rows))
	for i, row := range p.Rows {
		bucketed[i] = BucketedRow{Row: row, Bucket: itemize(row.Interval)}
	}
	return BucketedPDB{Rows: bucketed}
}

// ProjectLevel1 builds the level-1 PDB obtained by projecting the ISDB on
// anchor item x: for every ISDB row whose Item equals x, the postfix is the
// slice of rows strictly after it within the same sequence, re-anchored so
// Interval and WholeInterval both measure the offset from that occurrence.
//
// A postfix whose slice turns out empty (x was the last row of its
// sequence) is still assigned a PID but contributes no rows, which prunes
// it from every later step automatically.
func ProjectLevel1(table isdb.Table, item string) PDB {
	var child PDB
	pid := 0
	for i := range table {
		anchor := table[i]
		if anchor.Item != item {
			continue
		}
		for j := i + 1; j < len(table) && table[j].SID == anchor.SID; j++ {
			src := table[j]
			offset := src.Interval - anchor.Interval
			child.Rows = append(child.Rows, Row{
				SID:           src.SID,
				PID:           pid,
				Item:          src.Item,
				Interval:      offset,
				WholeInterval: offset,
			})
		}
		pid++
	}
	return child
}

// Project builds the child PDB obtained by projecting bp on extension
// (bucket, item): for every row of bp matching that (bucket, item), the
// postfix is the contiguous run of rows sharing its PID that appear
// strictly after it. Re-anchoring resets Interval relative to the matched
// row but leaves WholeInterval untouched, since the prefix's head does not
// move when the anchor does.
//
// bp's own rows may be reused by the returned PDB's construction; bp should
// be treated as consumed unless the caller has Cloned it beforehand.
func (bp BucketedPDB) Project(bucket int, item string) PDB {
	var child PDB
	pid := 0
	rows := bp.Rows
	for i := range rows {
		r := rows[i]
		if r.Item != item || r.Bucket != bucket {
			continue
		}
		for j := i + 1; j < len(rows) && rows[j].PID == r.PID; j++ {
			src := rows[j]
			child.Rows = append(child.Rows, Row{
				SID:           src.SID,
				PID:           pid,
				Item:          src.Item,
				Interval:      src.Interval - r.Interval,
				WholeInterval: src.WholeInterval,
			})
		}
		pid++
	}
	return child
}
