package sentiment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/FrenchMajesty/sentiment-pipeline/corpus"
	"github.com/FrenchMajesty/sentiment-pipeline/feature"
	"github.com/FrenchMajesty/sentiment-pipeline/linear"
)

// Config fully determines one pipeline: every knob of every stage, grouped
// per stage. One grid combination is exactly one Config value.
type Config struct {
	Mention    feature.MentionConfig    `json:"mention"`
	Vectorizer feature.VectorizerConfig `json:"vectorizer"`
	Length     feature.LengthConfig     `json:"length"`
	Classifier linear.Config            `json:"classifier"`
}

// Pipeline is a fitted normalize -> featurize -> classify composition.
// Construct one with Fit; a Pipeline is never refitted or reconfigured, so
// two fits share no mutable state.
type Pipeline struct {
	cfg     Config
	mention *feature.MentionNormalizer
	union   *feature.Union
	model   *linear.LogisticRegression
}

// Fit builds fresh stages from cfg and fits them on items, in stage order:
// the mention normalizer rewrites the text, the feature union learns its
// vocabulary from the rewritten fit text only, and the classifier trains on
// the resulting matrix.
func Fit(cfg Config, items corpus.Dataset) (*Pipeline, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("pipeline fit: empty training set")
	}

	p := &Pipeline{
		cfg:     cfg,
		mention: feature.NewMentionNormalizer(cfg.Mention),
		union: feature.NewUnion(
			feature.NewCountVectorizer(cfg.Vectorizer),
			feature.NewLengthFeature(cfg.Length),
		),
		model: linear.New(cfg.Classifier),
	}

	docs := p.mention.Transform(items.Texts())
	if err := p.union.Fit(docs); err != nil {
		return nil, fmt.Errorf("pipeline fit: %w", err)
	}

	X, err := p.union.Transform(docs)
	if err != nil {
		return nil, fmt.Errorf("pipeline fit: %w", err)
	}

	y := items.LabelIndices()
	for i, c := range y {
		if c < 0 {
			return nil, fmt.Errorf("pipeline fit: item %d has invalid label %q", i, items[i].Label)
		}
	}

	if err := p.model.Fit(X, y, len(corpus.Labels())); err != nil {
		return nil, fmt.Errorf("pipeline fit: %w", err)
	}
	return p, nil
}

// Config returns the configuration the pipeline was fitted with.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Predict classifies each item's text. The pipeline is not mutated.
func (p *Pipeline) Predict(items corpus.Dataset) ([]corpus.Label, error) {
	return p.PredictTexts(items.Texts())
}

// PredictTexts classifies raw texts through the fitted stages.
func (p *Pipeline) PredictTexts(texts []string) ([]corpus.Label, error) {
	X, err := p.transform(texts)
	if err != nil {
		return nil, err
	}

	indices, err := p.model.Predict(X)
	if err != nil {
		return nil, fmt.Errorf("pipeline predict: %w", err)
	}

	labels := corpus.Labels()
	out := make([]corpus.Label, len(indices))
	for i, idx := range indices {
		out[i] = labels[idx]
	}
	return out, nil
}

// PredictProba returns per-class scores, columns in canonical label order.
func (p *Pipeline) PredictProba(texts []string) (*mat.Dense, error) {
	X, err := p.transform(texts)
	if err != nil {
		return nil, err
	}
	proba, err := p.model.PredictProba(X)
	if err != nil {
		return nil, fmt.Errorf("pipeline predict: %w", err)
	}
	return proba, nil
}

func (p *Pipeline) transform(texts []string) (*mat.Dense, error) {
	docs := p.mention.Transform(texts)
	X, err := p.union.Transform(docs)
	if err != nil {
		return nil, fmt.Errorf("pipeline transform: %w", err)
	}
	return X, nil
}

// Accuracy scores the pipeline on labeled items: the fraction predicted
// exactly right.
func (p *Pipeline) Accuracy(items corpus.Dataset) (float64, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("pipeline score: empty dataset")
	}
	pred, err := p.Predict(items)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i, it := range items {
		if pred[i] == it.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(items)), nil
}
