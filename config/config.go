/*
Package config loads regression sweep definitions from YAML
*/
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"go-ml.dev/pkg/vacancy/model"
	"go-ml.dev/pkg/vacancy/tables"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

const DefaultOutput = "results"

var DefaultTrainSizes = []int{22, 70, 220, 700}

/*
Sweep is a set of regression runs over datasets, seeds and train sizes
*/
type Sweep struct {
	Output     string         `yaml:"output"` // directory of result files
	Index      string         `yaml:"index"`  // SQLite index path, no index if empty
	Plots      bool           `yaml:"plots"`
	Workers    int            `yaml:"workers"`    // parallel runs, sequential if <= 1
	KeepGoing  bool           `yaml:"keep_going"` // log and skip failed runs
	Columns    tables.Columns `yaml:"columns"`
	Seeds      []int64        `yaml:"seeds"`
	TrainSizes []int          `yaml:"train_sizes"`
	Datasets   []Dataset      `yaml:"datasets"`
	Runs       []Run          `yaml:"runs"`
}

/*
Dataset is a charge state subset stored in a CSV file
*/
type Dataset struct {
	Charge string `yaml:"charge"`
	Path   string `yaml:"path"`
}

/*
Run is a regressor preset applied to every seed and train size
*/
type Run struct {
	model.Training `yaml:",inline"`
	Charges        []string `yaml:"charges"` // datasets to run on, all if empty
	Suffix         string   `yaml:"suffix"`  // appended to the run name
}

/*
Name returns the result name of the run for the charge subset
*/
func (r Run) Name(charge string) string {
	n := r.Training.Name(charge)
	if r.Suffix != "" {
		n += "_" + r.Suffix
	}
	return n
}

/*
Applies reports if the run should be done on the charge subset
*/
func (r Run) Applies(charge string) bool {
	if len(r.Charges) == 0 {
		return true
	}
	for _, c := range r.Charges {
		if c == charge {
			return true
		}
	}
	return false
}

/*
Load reads a sweep from the YAML file. Relative dataset, output and
index paths are resolved against the file directory
*/
func Load(path string) (*Sweep, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to read config: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", path, err)
	}
	dir := filepath.Dir(path)
	resolve := func(p *string) {
		if *p != "" && *p != ":memory:" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	for i := range s.Datasets {
		resolve(&s.Datasets[i].Path)
	}
	resolve(&s.Output)
	resolve(&s.Index)
	return s, nil
}

/*
Parse decodes a sweep, applies defaults and validates it.
Unknown keys are errors
*/
func Parse(b []byte) (*Sweep, error) {
	s := &Sweep{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && err != io.EOF {
		return nil, model.Misconfigured("invalid sweep: %v", err)
	}
	s.Defaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sweep) Defaults() {
	if s.Output == "" {
		s.Output = DefaultOutput
	}
	if len(s.TrainSizes) == 0 {
		s.TrainSizes = DefaultTrainSizes
	}
	if len(s.Seeds) == 0 {
		s.Seeds = []int64{0}
	}
	if len(s.Runs) == 0 {
		s.Runs = []Run{{}}
	}
	for i := range s.Runs {
		s.Runs[i].Training = s.Runs[i].Training.Defaults()
	}
}

/*
Validate checks everything but the data
*/
func (s *Sweep) Validate() error {
	if len(s.Datasets) == 0 {
		return model.Misconfigured("sweep does not have datasets")
	}
	charges := map[string]bool{}
	for _, d := range s.Datasets {
		if d.Charge == "" || d.Path == "" {
			return model.Misconfigured("dataset needs charge and path, got %+v", d)
		}
		if charges[d.Charge] {
			return model.Misconfigured("duplicate dataset charge `%v`", d.Charge)
		}
		charges[d.Charge] = true
	}
	names := map[string]bool{}
	for _, r := range s.Runs {
		for _, c := range r.Charges {
			if !charges[c] {
				return model.Misconfigured("run refers unknown charge `%v`", c)
			}
		}
		for _, size := range s.TrainSizes {
			t := r.Training
			t.TrainSize = size
			if err := t.Validate(); err != nil {
				return err
			}
			for _, seed := range s.Seeds {
				for c := range charges {
					if !r.Applies(c) {
						continue
					}
					q := r
					q.Seed, q.TrainSize = seed, size
					n := q.Name(c)
					if names[n] {
						return model.Misconfigured("duplicate run name `%v`, use suffix", n)
					}
					names[n] = true
				}
			}
		}
	}
	return nil
}
