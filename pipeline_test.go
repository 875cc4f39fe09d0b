package sentiment

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/FrenchMajesty/sentiment-pipeline/corpus"
	"github.com/FrenchMajesty/sentiment-pipeline/feature"
	"github.com/FrenchMajesty/sentiment-pipeline/linear"
)

// makeCorpus builds a strongly separable 3-class corpus with nPerClass items
// per label.
func makeCorpus(nPerClass int) corpus.Dataset {
	templates := map[corpus.Label][]string{
		corpus.Negative: {
			"awful terrible hate this",
			"worst thing ever so bad",
			"hate it awful experience",
		},
		corpus.Neutral: {
			"okay average nothing special",
			"fine i guess whatever",
			"average okay not much",
		},
		corpus.Positive: {
			"love it wonderful great",
			"best ever so great",
			"wonderful love this great",
		},
	}

	var d corpus.Dataset
	for _, label := range corpus.Labels() {
		for i := 0; i < nPerClass; i++ {
			text := fmt.Sprintf("%s %d", templates[label][i%3], i)
			d = append(d, corpus.Item{Text: text, Label: label})
		}
	}
	return d
}

func TestPipelineFitPredict(t *testing.T) {
	train := makeCorpus(6)

	p, err := Fit(Config{Classifier: linear.Config{C: 10}}, train)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	acc, err := p.Accuracy(train)
	if err != nil {
		t.Fatalf("Accuracy failed: %v", err)
	}
	if acc < 0.9 {
		t.Errorf("expected near-perfect training accuracy on separable corpus, got %.3f", acc)
	}
}

func TestPipelineFitEmptySet(t *testing.T) {
	if _, err := Fit(Config{}, nil); err == nil {
		t.Error("expected error on empty training set")
	}
}

func TestPipelineFitsAreIsolated(t *testing.T) {
	train := makeCorpus(6)

	p1, err := Fit(Config{Classifier: linear.Config{C: 10}}, train)
	if err != nil {
		t.Fatalf("first Fit failed: %v", err)
	}
	before, err := p1.Predict(train)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	// A second fit with a different configuration must not disturb the
	// first pipeline.
	cfg := Config{
		Mention:    feature.MentionConfig{Active: true},
		Length:     feature.LengthConfig{Active: true},
		Classifier: linear.Config{C: 0.01},
	}
	if _, err := Fit(cfg, train[:9]); err != nil {
		t.Fatalf("second Fit failed: %v", err)
	}

	after, err := p1.Predict(train)
	if err != nil {
		t.Fatalf("Predict after second fit failed: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Error("predictions of first pipeline changed after an unrelated fit")
	}
}

func TestPipelinePredictProbaShape(t *testing.T) {
	train := makeCorpus(4)

	p, err := Fit(Config{}, train)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	proba, err := p.PredictProba([]string{"love it", "hate it"})
	if err != nil {
		t.Fatalf("PredictProba failed: %v", err)
	}
	rows, cols := proba.Dims()
	if rows != 2 || cols != 3 {
		t.Errorf("expected 2x3 probability matrix, got %dx%d", rows, cols)
	}
}
