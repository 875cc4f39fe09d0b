package feature

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/FrenchMajesty/sentiment-pipeline/tokenize"
)

// ErrEmptyVocabulary indicates that max-df pruning removed every term, which
// leaves the vectorizer unable to produce features. Callers treat this as a
// per-configuration fit failure, not a fatal error.
var ErrEmptyVocabulary = errors.New("vectorizer: empty vocabulary after max-df pruning")

// VectorizerConfig configures a CountVectorizer. The zero value means
// unigrams, no document-frequency pruning, default tokenization.
type VectorizerConfig struct {
	// NgramMin and NgramMax bound the n-gram sizes counted, inclusive.
	// Zero values default to 1 (unigrams only).
	NgramMin int `json:"ngram_min"`
	NgramMax int `json:"ngram_max"`

	// MaxDF drops terms that appear in more than this fraction of the fit
	// documents. Zero defaults to 1.0 (keep everything).
	MaxDF float64 `json:"max_df"`

	// Tokenizer is the tokenization policy applied to each document.
	Tokenizer tokenize.Policy `json:"tokenizer"`
}

func (c VectorizerConfig) withDefaults() (VectorizerConfig, error) {
	if c.NgramMin == 0 {
		c.NgramMin = 1
	}
	if c.NgramMax == 0 {
		c.NgramMax = c.NgramMin
	}
	if c.MaxDF == 0 {
		c.MaxDF = 1.0
	}
	if c.NgramMin < 1 || c.NgramMax < c.NgramMin {
		return c, fmt.Errorf("vectorizer: invalid ngram range (%d,%d)", c.NgramMin, c.NgramMax)
	}
	if c.MaxDF < 0 || c.MaxDF > 1 {
		return c, fmt.Errorf("vectorizer: max-df %v outside [0,1]", c.MaxDF)
	}
	return c, nil
}

// CountVectorizer is a VectorStage emitting token n-gram counts over a
// vocabulary learned at fit time. Terms first seen after Fit are ignored at
// Transform, so the vocabulary never leaks out of the fit documents.
type CountVectorizer struct {
	cfg   VectorizerConfig
	vocab map[string]int
	terms []string
}

// NewCountVectorizer builds an unfitted vectorizer from cfg.
func NewCountVectorizer(cfg VectorizerConfig) *CountVectorizer {
	return &CountVectorizer{cfg: cfg}
}

// Fit learns the n-gram vocabulary from docs, dropping terms whose document
// frequency exceeds MaxDF. Term indices are assigned in sorted term order so
// the same fit documents always yield the same column layout.
func (v *CountVectorizer) Fit(docs []string) error {
	cfg, err := v.cfg.withDefaults()
	if err != nil {
		return err
	}
	v.cfg = cfg

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range v.ngrams(doc) {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	maxCount := cfg.MaxDF * float64(len(docs))
	terms := make([]string, 0, len(df))
	for term, count := range df {
		if float64(count) > maxCount {
			continue
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return ErrEmptyVocabulary
	}
	sort.Strings(terms)

	v.terms = terms
	v.vocab = make(map[string]int, len(terms))
	for i, term := range terms {
		v.vocab[term] = i
	}
	return nil
}

// Transform counts vocabulary terms per document. Unknown terms are ignored.
func (v *CountVectorizer) Transform(docs []string) (*mat.Dense, error) {
	if v.vocab == nil {
		return nil, errors.New("vectorizer: transform before fit")
	}

	out := mat.NewDense(len(docs), len(v.terms), nil)
	for i, doc := range docs {
		for _, term := range v.ngrams(doc) {
			if j, ok := v.vocab[term]; ok {
				out.Set(i, j, out.At(i, j)+1)
			}
		}
	}
	return out, nil
}

// Width returns the vocabulary size. Zero before Fit.
func (v *CountVectorizer) Width() int {
	return len(v.terms)
}

// Vocabulary returns the learned terms in column order.
func (v *CountVectorizer) Vocabulary() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

func (v *CountVectorizer) ngrams(doc string) []string {
	tokens := v.cfg.Tokenizer.Tokenize(doc)

	var terms []string
	for n := v.cfg.NgramMin; n <= v.cfg.NgramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}
