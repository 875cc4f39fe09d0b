package sentiment

import (
	"errors"
	"testing"

	"github.com/FrenchMajesty/sentiment-pipeline/tokenize"
)

func TestGridExpandProducesFullProduct(t *testing.T) {
	grid := Grid{
		MentionActive: []bool{false, true},
		LengthActive:  []bool{false, true},
		NgramRanges:   [][2]int{{1, 1}, {1, 2}, {1, 3}},
		MaxDF:         []float64{0.5, 0.75, 1.0, 0.9, 0.8},
		Tokenizers:    []tokenize.Policy{{}, {ReduceRepeated: true}},
		C:             []float64{0.1, 1, 10},
	}

	if grid.Size() != 2*2*3*5*2*3 {
		t.Fatalf("Size() = %d, want 360", grid.Size())
	}

	combos, err := grid.Expand()
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(combos) != 360 {
		t.Fatalf("expected 360 combinations, got %d", len(combos))
	}

	// Every combination appears exactly once.
	seen := make(map[Config]bool, len(combos))
	for _, c := range combos {
		if seen[c] {
			t.Fatalf("duplicate combination: %+v", c)
		}
		seen[c] = true
	}

	// Enumeration order: first combo takes the first value of every axis,
	// last combo the last value of every axis.
	first := combos[0]
	if first.Mention.Active || first.Length.Active || first.Classifier.C != 0.1 {
		t.Errorf("unexpected first combination: %+v", first)
	}
	last := combos[len(combos)-1]
	if !last.Mention.Active || !last.Length.Active || last.Classifier.C != 10 {
		t.Errorf("unexpected last combination: %+v", last)
	}
	if last.Vectorizer.NgramMax != 3 || last.Vectorizer.MaxDF != 0.8 {
		t.Errorf("unexpected last vectorizer config: %+v", last.Vectorizer)
	}
}

func TestGridExpandEmptyAxis(t *testing.T) {
	grid := DefaultGrid()
	grid.C = nil

	_, err := grid.Expand()
	if !errors.Is(err, ErrInvalidGridAxis) {
		t.Errorf("expected ErrInvalidGridAxis, got %v", err)
	}
}

func TestDefaultGridIsValid(t *testing.T) {
	combos, err := DefaultGrid().Expand()
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(combos) != DefaultGrid().Size() {
		t.Errorf("expanded %d combos, Size() says %d", len(combos), DefaultGrid().Size())
	}
}
