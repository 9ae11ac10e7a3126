package tables

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
	"gotest.tools/assert"
)

const source = `formula,full_name,vacancy_formation_energy,band_gap,nn_ave_eleneg
MgO,MgO_Va_O1_0,5.5,4.4,2.1
MgO,MgO_Va_Mg1_0,6.1,,2.1
ZnO,ZnO_Va_O1_0,3.2,1.9,nan
`

func Test_ReadCSV(t *testing.T) {
	q, err := ReadCSV(strings.NewReader(source), Columns{})
	assert.NilError(t, err)
	assert.Equal(t, q.Len(), 3)
	assert.DeepEqual(t, q.Features, []string{"band_gap", "nn_ave_eleneg"})
	assert.DeepEqual(t, q.Groups(), []string{"MgO", "ZnO"})
	assert.DeepEqual(t, q.IDs(), []string{"MgO_Va_O1_0", "MgO_Va_Mg1_0", "ZnO_Va_O1_0"})
	assert.DeepEqual(t, q.Labels(), []float64{5.5, 6.1, 3.2})
	assert.DeepEqual(t, q.Rows[1].Values, []float64{0, 2.1})
	assert.DeepEqual(t, q.Rows[2].Values, []float64{1.9, 0})
	assert.Assert(t, q.Digest != 0)
}

func Test_ReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("formula,full_name,x\nA,a,1\n"), Columns{})
	assert.ErrorContains(t, err, "vacancy_formation_energy")
	_, err = ReadCSV(strings.NewReader("formula,full_name,vacancy_formation_energy\nA,a,\n"), Columns{})
	assert.ErrorContains(t, err, "empty")
	_, err = ReadCSV(strings.NewReader("formula,full_name,vacancy_formation_energy,x\nA,a,1,abc\n"), Columns{})
	assert.ErrorContains(t, err, "column `x`")
}

func Test_CustomColumns(t *testing.T) {
	q, err := ReadCSV(strings.NewReader("g,id,y,f\nA,a,1,2\n"), Columns{Group: "g", ID: "id", Label: "y"})
	assert.NilError(t, err)
	assert.DeepEqual(t, q.Features, []string{"f"})
	assert.Equal(t, q.Rows[0].Label, 1.0)
}

func Test_Matrix(t *testing.T) {
	q, err := ReadCSV(strings.NewReader(source), Columns{})
	assert.NilError(t, err)
	m, err := q.Matrix("nn_ave_eleneg")
	assert.NilError(t, err)
	r, c := m.Dims()
	assert.Equal(t, r, 3)
	assert.Equal(t, c, 1)
	assert.Equal(t, m.At(0, 0), 2.1)
	_, err = q.Matrix("unknown")
	assert.ErrorContains(t, err, "unknown")

	f := q.Filter(func(x Row) bool { return x.Group == "ZnO" })
	assert.Equal(t, f.Len(), 1)
	m, err = f.Matrix()
	assert.NilError(t, err)
	assert.Equal(t, m.At(0, 0), 1.9)
}

func Test_OpenXz(t *testing.T) {
	path := filepath.Join(t.TempDir(), "df_charge0.csv.xz")
	f, err := os.Create(path)
	assert.NilError(t, err)
	w, err := xz.NewWriter(f)
	assert.NilError(t, err)
	_, err = w.Write([]byte(source))
	assert.NilError(t, err)
	assert.NilError(t, w.Close())
	assert.NilError(t, f.Close())

	q, err := Open(path, Columns{})
	assert.NilError(t, err)
	assert.Equal(t, q.Len(), 3)

	plain, err := ReadCSV(strings.NewReader(source), Columns{})
	assert.NilError(t, err)
	assert.Equal(t, q.Digest, plain.Digest)
}
