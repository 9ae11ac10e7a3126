package model

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"

	"go-ml.dev/pkg/vacancy/fu"
	"golang.org/x/xerrors"
)

/*
Importance is a feature weight reported by tree ensembles
*/
type Importance struct {
	Feature string
	Weight  float64
}

/*
Importances is an ordered feature->weight mapping.
It's stored as a JSON object keeping the order of keys
*/
type Importances []Importance

/*
SortImportances pairs names with weights and sorts them by weight descending.
Equal weights keep the names order
*/
func SortImportances(names []string, weights []float64) Importances {
	r := make(Importances, len(names))
	for i, n := range names {
		r[i] = Importance{n, weights[i]}
	}
	sort.SliceStable(r, func(i, j int) bool { return r[i].Weight > r[j].Weight })
	return r
}

func (m Importances) Get(name string) (float64, bool) {
	for _, x := range m {
		if x.Feature == name {
			return x.Weight, true
		}
	}
	return 0, false
}

func (m Importances) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	b := bytes.Buffer{}
	b.WriteByte('{')
	for i, x := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(x.Feature)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(x.Weight)
		if err != nil {
			return nil, xerrors.Errorf("importance of `%v`: %w", x.Feature, err)
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (m *Importances) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*m = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	if t, err := dec.Token(); err != nil || t != json.Delim('{') {
		return xerrors.Errorf("importances must be a JSON object")
	}
	r := Importances{}
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return err
		}
		x := Importance{Feature: t.(string)}
		if err = dec.Decode(&x.Weight); err != nil {
			return xerrors.Errorf("importance of `%v`: %w", x.Feature, err)
		}
		r = append(r, x)
	}
	*m = r
	return nil
}

/*
CVScore is a cross-validated score of one grid search candidate
*/
type CVScore struct {
	Params Params  `json:"params"`
	RMSE   float64 `json:"rmse"`
}

/*
Statistics is the record of one regression run. It's created once after
evaluation and should not be modified after that
*/
type Statistics struct {
	Regressor   Kind  `json:"regressor"`
	TrainSize   int   `json:"train_size"` // requested train groups
	TestSize    int   `json:"test_size"`  // requested test groups
	NTrain      int   `json:"n_train"`    // train samples
	NTest       int   `json:"n_test"`     // test samples
	RandomState int64 `json:"random_state"`

	RmseTrain float64 `json:"rmse_train"`
	MaeTrain  float64 `json:"mae_train"`
	R2Train   float64 `json:"r2_train"`
	RmseTest  float64 `json:"rmse_test"`
	MaeTest   float64 `json:"mae_test"`
	R2Test    float64 `json:"r2_test"`

	Errors      map[string]float64    `json:"errors"`      // predicted - actual
	Predictions map[string][2]float64 `json:"predictions"` // predicted, actual
	Importances Importances           `json:"importances,omitempty"`
	BestParams  Params                `json:"best_params,omitempty"`
	CVScores    []CVScore             `json:"cv_scores,omitempty"`
}

func (s *Statistics) Train() Metrics {
	return Metrics{RMSE: s.RmseTrain, MAE: s.MaeTrain, R2: s.R2Train}
}

func (s *Statistics) Test() Metrics {
	return Metrics{RMSE: s.RmseTest, MAE: s.MaeTest, R2: s.R2Test}
}

/*
ToStorage encodes the record as JSON
*/
func (s *Statistics) ToStorage() ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, xerrors.Errorf("failed to encode statistics: %w", err)
	}
	return b, nil
}

/*
FromStorage decodes a record encoded by ToStorage
*/
func FromStorage(b []byte) (*Statistics, error) {
	s := &Statistics{}
	if err := json.Unmarshal(b, s); err != nil {
		return nil, xerrors.Errorf("failed to decode statistics: %w", err)
	}
	return s, nil
}

/*
WriteFile stores the record as JSON file creating parent directories
*/
func (s *Statistics) WriteFile(path string) error {
	b, err := s.ToStorage()
	if err != nil {
		return err
	}
	if err = fu.EnsureDir(path); err != nil {
		return xerrors.Errorf("failed to create directory for %v: %w", path, err)
	}
	if err = os.WriteFile(path, b, 0o644); err != nil {
		return xerrors.Errorf("failed to write statistics: %w", err)
	}
	return nil
}

func ReadStatistics(path string) (*Statistics, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to read statistics: %w", err)
	}
	return FromStorage(b)
}
