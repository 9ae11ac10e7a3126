package model

import (
	"math/rand"

	"go-ml.dev/pkg/vacancy/tables"
)

/*
Dataset is an abstraction of some source of a data to feed hungry models
*/
type Dataset struct {
	Source   *tables.Table // labeled rows
	Features []string      // descriptors to train on, all table features if empty
}

/*
Split is a group level partition of a dataset
*/
type Split struct {
	TrainGroups, TestGroups []string
	Train, Test             *tables.Table
}

/*
Descriptors returns the effective feature names
*/
func (d Dataset) Descriptors() []string {
	if len(d.Features) != 0 {
		return d.Features
	}
	return d.Source.Features
}

/*
Validate checks the dataset can be used for training
*/
func (d Dataset) Validate() error {
	if d.Source == nil || d.Source.Len() == 0 {
		return Misconfigured("dataset is empty")
	}
	for _, n := range d.Features {
		if d.Source.Index(n) < 0 {
			return Misconfigured("dataset does not have descriptor `%v`", n)
		}
	}
	if len(d.Descriptors()) == 0 {
		return Misconfigured("dataset does not have descriptors")
	}
	ids := make(map[string]struct{}, d.Source.Len())
	for _, x := range d.Source.Rows {
		if _, ok := ids[x.ID]; ok {
			return Misconfigured("duplicate sample id `%v`", x.ID)
		}
		ids[x.ID] = struct{}{}
	}
	return nil
}

/*
Split shuffles distinct groups with a seeded generator, takes testSize groups
for test and the next trainSize groups for training, and drops the rest.
Rows follow their group.
*/
func (d Dataset) Split(trainSize, testSize int, seed int64) (*Split, error) {
	if trainSize < 1 || testSize < 1 {
		return nil, Misconfigured("train size %d and test size %d must be positive", trainSize, testSize)
	}
	groups := d.Source.Groups()
	if trainSize+testSize > len(groups) {
		return nil, Misconfigured(
			"train size %d + test size %d exceeds %d distinct groups",
			trainSize, testSize, len(groups))
	}
	perm := rand.New(rand.NewSource(seed)).Perm(len(groups))
	s := &Split{
		TestGroups:  make([]string, testSize),
		TrainGroups: make([]string, trainSize),
	}
	side := make(map[string]bool, trainSize+testSize)
	for i, j := range perm[:testSize+trainSize] {
		if i < testSize {
			s.TestGroups[i] = groups[j]
			side[groups[j]] = false
		} else {
			s.TrainGroups[i-testSize] = groups[j]
			side[groups[j]] = true
		}
	}
	s.Train = d.Source.Filter(func(x tables.Row) bool {
		train, ok := side[x.Group]
		return ok && train
	})
	s.Test = d.Source.Filter(func(x tables.Row) bool {
		train, ok := side[x.Group]
		return ok && !train
	})
	return s, nil
}
