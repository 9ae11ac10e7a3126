/*
Package tables implements an in-memory labeled table of numeric descriptors
*/
package tables

import (
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

/*
Row is a labeled example
*/
type Row struct {
	Group  string    // rows sharing a group are split together
	ID     string    // unique sample identifier
	Label  float64   // regression target
	Values []float64 // descriptor values aligned to Table.Features
}

/*
Table is a set of rows sharing one descriptors schema
*/
type Table struct {
	Features []string
	Rows     []Row
	Digest   uint64 // xxhash of the source bytes, zero if unknown
}

func (t *Table) Len() int {
	return len(t.Rows)
}

/*
Index returns position of the named feature or -1
*/
func (t *Table) Index(name string) int {
	for i, n := range t.Features {
		if n == name {
			return i
		}
	}
	return -1
}

/*
Groups returns distinct group values in order of first appearance
*/
func (t *Table) Groups() []string {
	seen := make(map[string]struct{})
	r := []string{}
	for _, x := range t.Rows {
		if _, ok := seen[x.Group]; !ok {
			seen[x.Group] = struct{}{}
			r = append(r, x.Group)
		}
	}
	return r
}

/*
Filter returns a new table with rows matching the predicate.
Rows are shared, not copied
*/
func (t *Table) Filter(f func(Row) bool) *Table {
	q := &Table{Features: t.Features, Digest: t.Digest}
	for _, x := range t.Rows {
		if f(x) {
			q.Rows = append(q.Rows, x)
		}
	}
	return q
}

func (t *Table) IDs() []string {
	r := make([]string, len(t.Rows))
	for i, x := range t.Rows {
		r[i] = x.ID
	}
	return r
}

func (t *Table) Labels() []float64 {
	r := make([]float64, len(t.Rows))
	for i, x := range t.Rows {
		r[i] = x.Label
	}
	return r
}

/*
Matrix builds a rows x features dense matrix of the named features
in the given order. All features are used if names is empty
*/
func (t *Table) Matrix(names ...string) (*mat.Dense, error) {
	if len(names) == 0 {
		names = t.Features
	}
	idx := make([]int, len(names))
	for i, n := range names {
		if idx[i] = t.Index(n); idx[i] < 0 {
			return nil, xerrors.Errorf("table does not have feature `%v`", n)
		}
	}
	if len(t.Rows) == 0 || len(names) == 0 {
		return nil, xerrors.Errorf("empty matrix %dx%d", len(t.Rows), len(names))
	}
	m := mat.NewDense(len(t.Rows), len(names), nil)
	for i, x := range t.Rows {
		for j, k := range idx {
			m.Set(i, j, x.Values[k])
		}
	}
	return m, nil
}
