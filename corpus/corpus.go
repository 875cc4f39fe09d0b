// Package corpus defines the labeled text dataset, its three-class sentiment
// labels, and the train/eval split used by the rest of the pipeline.
package corpus

import (
	"fmt"
	"math/rand"
)

// Label is one of the three sentiment classes a corpus item can carry.
type Label string

const (
	Negative Label = "negative"
	Neutral  Label = "neutral"
	Positive Label = "positive"
)

// Labels returns the fixed class set in its canonical order. The order is
// load-bearing: confusion-matrix rows/columns and classifier class indices
// all follow it.
func Labels() []Label {
	return []Label{Negative, Neutral, Positive}
}

// Index returns the canonical class index of the label, or -1 if the label
// is not one of the fixed three.
func (l Label) Index() int {
	switch l {
	case Negative:
		return 0
	case Neutral:
		return 1
	case Positive:
		return 2
	}
	return -1
}

// ParseLabel maps a raw sentiment string from the source API onto the fixed
// class set. Unrecognized values are a MalformedRecord error.
func ParseLabel(s string) (Label, error) {
	switch Label(s) {
	case Negative, Neutral, Positive:
		return Label(s), nil
	}
	return "", fmt.Errorf("%w: unknown sentiment label %q", ErrMalformedRecord, s)
}

// Item is a single labeled text sample. Immutable once loaded.
type Item struct {
	Text  string `json:"text"`
	Label Label  `json:"label"`
}

// Dataset is an ordered sequence of labeled items.
type Dataset []Item

// Split partitions the dataset into disjoint training and evaluation subsets
// covering the whole dataset. The shuffle is seeded, so a fixed seed gives an
// identical split on identical input. An evalFrac outside (0,1) falls back
// to the 0.25 default; class balance across the two subsets is not
// guaranteed.
func (d Dataset) Split(evalFrac float64, seed int64) (train, eval Dataset) {
	if evalFrac <= 0 {
		evalFrac = 0.25
	}
	if evalFrac >= 1 {
		evalFrac = 0.25
	}

	perm := rand.New(rand.NewSource(seed)).Perm(len(d))
	nEval := int(float64(len(d)) * evalFrac)

	eval = make(Dataset, 0, nEval)
	train = make(Dataset, 0, len(d)-nEval)
	for i, idx := range perm {
		if i < nEval {
			eval = append(eval, d[idx])
		} else {
			train = append(train, d[idx])
		}
	}
	return train, eval
}

// Texts returns the item texts in dataset order.
func (d Dataset) Texts() []string {
	out := make([]string, len(d))
	for i, it := range d {
		out[i] = it.Text
	}
	return out
}

// LabelIndices returns the canonical class index of every item, in dataset
// order.
func (d Dataset) LabelIndices() []int {
	out := make([]int, len(d))
	for i, it := range d {
		out[i] = it.Label.Index()
	}
	return out
}

// MajorityLabel returns the most frequent label in the dataset. Ties go to
// the class that comes first in canonical order. Returns Neutral for an
// empty dataset.
func (d Dataset) MajorityLabel() Label {
	counts := make(map[Label]int, 3)
	for _, it := range d {
		counts[it.Label]++
	}

	best := Neutral
	bestCount := -1
	for _, l := range Labels() {
		if counts[l] > bestCount {
			best = l
			bestCount = counts[l]
		}
	}
	return best
}
