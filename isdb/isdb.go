// Package isdb builds the Interval-extended Sequence Database: the flat,
// sorted table of item occurrences that seeds GISP mining.
//
// An ISDB has one row per (sequence, item, interval) observation. Rows are
// sorted by (sid, interval, item) ascending; this order is the only
// ordering guarantee mining depends on.
package isdb

import "sort"

// Itemset groups items that occur together at the same interval within a
// sequence.
type Itemset struct {
	Interval int
	Items    []string
}

// Sequence is an ordered list of itemsets.
type Sequence []Itemset

// Row is one observation of an item at an absolute offset within sequence
// SID.
type Row struct {
	SID      int
	Item     string
	Interval int
}

// Table is an Interval-extended Sequence Database: Transform's output,
// sorted by (SID, Interval, Item) ascending.
type Table []Row

// Transform flattens sequences into a sorted ISDB. SID is the zero-based
// index of the sequence in sequences. Every item inside an itemset becomes
// one row at the itemset's interval; duplicate items within an itemset
// produce duplicate rows, since collapsing them is the Counter's job, not
// the Flattener's.
func Transform(sequences []Sequence) Table {
	var table Table
	for sid, sequence := range sequences {
		for _, itemset := range sequence {
			for _, item := range itemset.Items {
				table = append(table, Row{SID: sid, Item: item, Interval: itemset.Interval})
			}
		}
	}
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.SID != b.SID {
			return a.SID < b.SID
		}
		if a.Interval != b.Interval {
			return a.Interval < b.Interval
		}
		return a.Item < b.Item
	})
	return table
}
