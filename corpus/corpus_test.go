package corpus

import (
	"fmt"
	"testing"
)

func makeDataset(n int) Dataset {
	labels := Labels()
	d := make(Dataset, n)
	for i := range d {
		d[i] = Item{Text: fmt.Sprintf("item %d", i), Label: labels[i%3]}
	}
	return d
}

func TestSplitDisjointAndCovering(t *testing.T) {
	d := makeDataset(100)
	train, eval := d.Split(0.25, 42)

	if len(train)+len(eval) != len(d) {
		t.Fatalf("split does not cover dataset: %d + %d != %d", len(train), len(eval), len(d))
	}
	if len(eval) != 25 {
		t.Errorf("expected 25 eval items, got %d", len(eval))
	}

	seen := make(map[string]int)
	for _, it := range train {
		seen[it.Text]++
	}
	for _, it := range eval {
		seen[it.Text]++
	}
	for text, count := range seen {
		if count != 1 {
			t.Errorf("item %q appears %d times across splits", text, count)
		}
	}
}

func TestSplitDeterministicUnderFixedSeed(t *testing.T) {
	d := makeDataset(60)

	train1, eval1 := d.Split(0.25, 7)
	train2, eval2 := d.Split(0.25, 7)

	for i := range train1 {
		if train1[i] != train2[i] {
			t.Fatalf("train item %d differs across runs with same seed", i)
		}
	}
	for i := range eval1 {
		if eval1[i] != eval2[i] {
			t.Fatalf("eval item %d differs across runs with same seed", i)
		}
	}
}

func TestSplitOutOfRangeFractionUsesDefault(t *testing.T) {
	d := makeDataset(100)

	for _, frac := range []float64{-0.5, 0, 1, 1.5} {
		_, eval := d.Split(frac, 42)
		if len(eval) != 25 {
			t.Errorf("evalFrac %v: expected 25 eval items from the default fraction, got %d", frac, len(eval))
		}
	}
}

func TestMajorityLabel(t *testing.T) {
	d := Dataset{
		{Text: "a", Label: Positive},
		{Text: "b", Label: Positive},
		{Text: "c", Label: Negative},
	}
	if got := d.MajorityLabel(); got != Positive {
		t.Errorf("expected positive majority, got %s", got)
	}

	// Ties go to canonical order.
	tie := Dataset{
		{Text: "a", Label: Positive},
		{Text: "b", Label: Negative},
	}
	if got := tie.MajorityLabel(); got != Negative {
		t.Errorf("expected negative on tie, got %s", got)
	}
}

func TestParseLabel(t *testing.T) {
	if _, err := ParseLabel("positive"); err != nil {
		t.Errorf("unexpected error for valid label: %v", err)
	}
	if _, err := ParseLabel("angry"); err == nil {
		t.Error("expected error for unknown label")
	}
}

func TestLabelIndexOrder(t *testing.T) {
	for i, l := range Labels() {
		if l.Index() != i {
			t.Errorf("label %s: index %d does not match canonical position %d", l, l.Index(), i)
		}
	}
	if Label("bogus").Index() != -1 {
		t.Error("expected -1 for unknown label")
	}
}
