package pdb

import (
	"reflect"
	"testing"

	"github.com/grailbio/gisp/isdb"
)

func s1Table() isdb.Table {
	return isdb.Transform([]isdb.Sequence{
		{
			{Interval: 0, Items: []string{"a"}},
			{Interval: 86400, Items: []string{"a", "b", "c"}},
			{Interval: 259200, Items: []string{"a", "c"}},
		},
		{
			{Interval: 0, Items: []string{"a", "d"}},
			{Interval: 259200, Items: []string{"c"}},
		},
		{
			{Interval: 0, Items: []string{"a", "e", "f"}},
			{Interval: 172800, Items: []string{"a", "b"}},
		},
	})
}

// TestProjectLevel1 validates the projection-correctness property: the
// union of emitted postfixes equals, sequence by sequence, the ISDB suffix
// strictly after each occurrence of the anchor item, rebased to that
// occurrence.
func TestProjectLevel1(t *testing.T) {
	table := s1Table()
	got := ProjectLevel1(table, "a")

	// Anchors on "a": sid0@0, sid0@86400, sid0@259200, sid1@0, sid2@0,
	// sid2@172800.
	want := []Row{
		// anchor sid0@0 -> postfix rows at 86400 and 259200, rebased.
		{SID: 0, PID: 0, Item: "a", Interval: 86400, WholeInterval: 86400},
		{SID: 0, PID: 0, Item: "b", Interval: 86400, WholeInterval: 86400},
		{SID: 0, PID: 0, Item: "c", Interval: 86400, WholeInterval: 86400},
		{SID: 0, PID: 0, Item: "a", Interval: 259200, WholeInterval: 259200},
		{SID: 0, PID: 0, Item: "c", Interval: 259200, WholeInterval: 259200},
		// anchor sid0@86400 (the "a" row within that itemset) -> postfix
		// is everything after it in the same itemset plus later rows.
		{SID: 0, PID: 1, Item: "b", Interval: 0, WholeInterval: 0},
		{SID: 0, PID: 1, Item: "c", Interval: 0, WholeInterval: 0},
		{SID: 0, PID: 1, Item: "a", Interval: 172800, WholeInterval: 172800},
		{SID: 0, PID: 1, Item: "c", Interval: 172800, WholeInterval: 172800},
		// anchor sid0@259200 ("a") -> only "c" remains in same itemset.
		{SID: 0, PID: 2, Item: "c", Interval: 0, WholeInterval: 0},
		// anchor sid1@0 ("a") -> "d" in same itemset, then "c" at 259200.
		{SID: 1, PID: 3, Item: "d", Interval: 0, WholeInterval: 0},
		{SID: 1, PID: 3, Item: "c", Interval: 259200, WholeInterval: 259200},
		// anchor sid2@0 ("a") -> "e","f" then "a","b" at 172800.
		{SID: 2, PID: 4, Item: "e", Interval: 0, WholeInterval: 0},
		{SID: 2, PID: 4, Item: "f", Interval: 0, WholeInterval: 0},
		{SID: 2, PID: 4, Item: "a", Interval: 172800, WholeInterval: 172800},
		{SID: 2, PID: 4, Item: "b", Interval: 172800, WholeInterval: 172800},
		// anchor sid2@172800 ("a") -> only "b" remains.
		{SID: 2, PID: 5, Item: "b", Interval: 0, WholeInterval: 0},
	}

	if !reflect.DeepEqual(got.Rows, want) {
		t.Errorf("ProjectLevel1(table, \"a\") =\n%+v\nwant\n%+v", got.Rows, want)
	}
}

func TestProjectLevel1EmptyPostfixPruned(t *testing.T) {
	table := isdb.Transform([]isdb.Sequence{
		{{Interval: 0, Items: []string{"a"}}},
	})
	got := ProjectLevel1(table, "a")
	if len(got.Rows) != 0 {
		t.Errorf("expected pruned empty postfix, got %+v", got.Rows)
	}
}

// TestBucketizeAndProject checks that deeper projection matches on the
// bucket column computed for the current frame, and re-anchors Interval
// while leaving WholeInterval untouched.
func TestBucketizeAndProject(t *testing.T) {
	parent := PDB{Rows: []Row{
		{SID: 0, PID: 0, Item: "a", Interval: 86400, WholeInterval: 86400},
		{SID: 0, PID: 0, Item: "b", Interval: 86400, WholeInterval: 86400},
		{SID: 0, PID: 0, Item: "c", Interval: 172800, WholeInterval: 172800},
	}}
	dayBucket := func(t int) int { return t / 86400 }
	bucketed := parent.Bucketize(dayBucket)

	for i, row := range bucketed.Rows {
		want := dayBucket(parent.Rows[i].Interval)
		if row.Bucket != want {
			t.Errorf("bucketed.Rows[%d].Bucket = %d, want %d", i, row.Bucket, want)
		}
	}

	child := bucketed.Project(1, "a")
	want := []Row{
		{SID: 0, PID: 0, Item: "b", Interval: 0, WholeInterval: 86400},
		{SID: 0, PID: 0, Item: "c", Interval: 86400, WholeInterval: 172800},
	}
	if !reflect.DeepEqual(child.Rows, want) {
		t.Errorf("Project(1, \"a\") = %+v, want %+v", child.Rows, want)
	}
}

func TestProjectMultipleAnchorsInOnePostfixYieldSeparateChildren(t *testing.T) {
	parent := PDB{Rows: []Row{
		{SID: 0, PID: 0, Item: "a", Interval: 0, WholeInterval: 0},
		{SID: 0, PID: 0, Item: "x", Interval: 10, WholeInterval: 10},
		{SID: 0, PID: 0, Item: "a", Interval: 20, WholeInterval: 20},
		{SID: 0, PID: 0, Item: "y", Interval: 30, WholeInterval: 30},
	}}
	bucketed := parent.Bucketize(func(int) int { return 0 })
	child := bucketed.Project(0, "a")

	// Two matching anchors (positions 0 and 2) must yield two PIDs.
	pids := map[int]bool{}
	for _, r := range child.Rows {
		pids[r.PID] = true
	}
	if len(pids) != 2 {
		t.Errorf("expected 2 distinct child PIDs, got %d (%+v)", len(pids), child.Rows)
	}
}

func TestClone(t *testing.T) {
	p := PDB{Rows: []Row{{SID: 1, PID: 2, Item: "a", Interval: 3, WholeInterval: 4}}}
	clone := p.Clone()
	clone.Rows[0].Item = "z"
	if p.Rows[0].Item == "z" {
		t.Errorf("Clone() shares backing array with receiver")
	}
}
