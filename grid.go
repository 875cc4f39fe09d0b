package sentiment

import (
	"fmt"

	"github.com/FrenchMajesty/sentiment-pipeline/feature"
	"github.com/FrenchMajesty/sentiment-pipeline/linear"
	"github.com/FrenchMajesty/sentiment-pipeline/tokenize"
)

// Grid declares candidate values per pipeline knob. Expand takes the
// Cartesian product of every axis; axes carry no cross-axis constraints, so
// every combination is a complete, independently fittable Config.
type Grid struct {
	MentionActive []bool
	LengthActive  []bool
	NgramRanges   [][2]int
	MaxDF         []float64
	Tokenizers    []tokenize.Policy
	C             []float64
}

// DefaultGrid returns the search space used by the CLI.
func DefaultGrid() Grid {
	return Grid{
		MentionActive: []bool{false, true},
		LengthActive:  []bool{false, true},
		NgramRanges:   [][2]int{{1, 1}, {1, 2}, {1, 3}},
		MaxDF:         []float64{0.5, 0.75, 1.0},
		Tokenizers: []tokenize.Policy{
			tokenize.Default(),
			{ReduceRepeated: true},
			{PreserveCase: true, ReduceRepeated: true},
		},
		C: []float64{0.01, 0.1, 1, 10, 100},
	}
}

// Size is the number of combinations Expand will produce.
func (g Grid) Size() int {
	return len(g.MentionActive) * len(g.LengthActive) * len(g.NgramRanges) *
		len(g.MaxDF) * len(g.Tokenizers) * len(g.C)
}

// Expand enumerates every combination in a fixed nesting order (mention,
// length, ngram range, max-df, tokenizer, C). The order is stable: it
// defines combination ids and therefore which combination wins a tied
// search. An empty axis is ErrInvalidGridAxis.
func (g Grid) Expand() ([]Config, error) {
	axes := []struct {
		name string
		size int
	}{
		{"mention.active", len(g.MentionActive)},
		{"length.active", len(g.LengthActive)},
		{"vectorizer.ngram_range", len(g.NgramRanges)},
		{"vectorizer.max_df", len(g.MaxDF)},
		{"vectorizer.tokenizer", len(g.Tokenizers)},
		{"classifier.c", len(g.C)},
	}
	for _, axis := range axes {
		if axis.size == 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidGridAxis, axis.name)
		}
	}

	combos := make([]Config, 0, g.Size())
	for _, mention := range g.MentionActive {
		for _, length := range g.LengthActive {
			for _, ngram := range g.NgramRanges {
				for _, maxDF := range g.MaxDF {
					for _, tok := range g.Tokenizers {
						for _, c := range g.C {
							combos = append(combos, Config{
								Mention: feature.MentionConfig{Active: mention},
								Length:  feature.LengthConfig{Active: length},
								Vectorizer: feature.VectorizerConfig{
									NgramMin:  ngram[0],
									NgramMax:  ngram[1],
									MaxDF:     maxDF,
									Tokenizer: tok,
								},
								Classifier: linear.Config{C: c},
							})
						}
					}
				}
			}
		}
	}
	return combos, nil
}
