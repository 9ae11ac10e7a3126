package tables

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/ulikunitz/xz"
	"golang.org/x/xerrors"
)

/*
Columns names the non-descriptor columns of a source
*/
type Columns struct {
	Group string `yaml:"group"`
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

var DefaultColumns = Columns{
	Group: "formula",
	ID:    "full_name",
	Label: "vacancy_formation_energy",
}

func (c Columns) orDefault() Columns {
	if c.Group == "" {
		c.Group = DefaultColumns.Group
	}
	if c.ID == "" {
		c.ID = DefaultColumns.ID
	}
	if c.Label == "" {
		c.Label = DefaultColumns.Label
	}
	return c
}

/*
ReadCSV reads a table from CSV with a header row. Every column other than
group, id and label is a descriptor; blank or NaN descriptor cells become 0.
A blank label is an error
*/
func ReadCSV(rd io.Reader, cols Columns) (*Table, error) {
	cols = cols.orDefault()
	h := xxhash.New()
	r := csv.NewReader(io.TeeReader(rd, h))
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, xerrors.Errorf("failed to read header: %w", err)
	}
	gi, ii, li := -1, -1, -1
	fi := []int{}
	t := &Table{}
	for i, n := range header {
		switch n = strings.TrimSpace(n); n {
		case cols.Group:
			gi = i
		case cols.ID:
			ii = i
		case cols.Label:
			li = i
		default:
			fi = append(fi, i)
			t.Features = append(t.Features, n)
		}
	}
	for n, i := range map[string]int{cols.Group: gi, cols.ID: ii, cols.Label: li} {
		if i < 0 {
			return nil, xerrors.Errorf("source does not have column `%v`", n)
		}
	}
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, xerrors.Errorf("failed to read line %d: %w", line, err)
		}
		row := Row{Group: rec[gi], ID: rec[ii], Values: make([]float64, len(fi))}
		if row.Label, err = parse(rec[li]); err != nil {
			return nil, xerrors.Errorf("line %d, column `%v`: %w", line, cols.Label, err)
		}
		if math.IsNaN(row.Label) {
			return nil, xerrors.Errorf("line %d: label `%v` is empty", line, cols.Label)
		}
		for j, k := range fi {
			v, err := parse(rec[k])
			if err != nil {
				return nil, xerrors.Errorf("line %d, column `%v`: %w", line, t.Features[j], err)
			}
			if !math.IsNaN(v) {
				row.Values[j] = v
			}
		}
		t.Rows = append(t.Rows, row)
	}
	t.Digest = h.Sum64()
	return t, nil
}

func parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

/*
Open reads a table from a CSV file, transparently decompressing *.xz files
*/
func Open(path string, cols Columns) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	var rd io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		if rd, err = xz.NewReader(f); err != nil {
			return nil, xerrors.Errorf("failed to decompress %v: %w", path, err)
		}
	}
	t, err := ReadCSV(rd, cols)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", path, err)
	}
	return t, nil
}
