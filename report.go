package sentiment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FrenchMajesty/sentiment-pipeline/corpus"
)

// ConfusionMatrix counts true label (row) against predicted label (column),
// with marginal totals. Labels follow canonical class order.
type ConfusionMatrix struct {
	Labels    []corpus.Label `json:"labels"`
	Counts    [][]int        `json:"counts"`
	RowTotals []int          `json:"row_totals"`
	ColTotals []int          `json:"col_totals"`
	Total     int            `json:"total"`
}

// ClassMetrics is one row of the classification report. A class absent from
// the evaluation set, or never predicted, reports 0 for the undefined
// metrics rather than dividing by zero.
type ClassMetrics struct {
	Label     corpus.Label `json:"label"`
	Precision float64      `json:"precision"`
	Recall    float64      `json:"recall"`
	F1        float64      `json:"f1"`
	Support   int          `json:"support"`
}

// Report is the final evaluation of the refit pipeline on the held-out set.
type Report struct {
	Accuracy float64 `json:"accuracy"`

	// NullAccuracy is the accuracy of always predicting the training
	// set's majority class on the evaluation set.
	NullAccuracy  float64 `json:"null_accuracy"`
	AccuracyDelta float64 `json:"accuracy_delta"`

	MajorityLabel corpus.Label    `json:"majority_label"`
	Confusion     ConfusionMatrix `json:"confusion_matrix"`
	Classes       []ClassMetrics  `json:"classes"`
	WeightedAvg   ClassMetrics    `json:"weighted_avg"`

	// BestConfig and BestScore echo the grid-search winner when the
	// caller attaches them.
	BestConfig *Config `json:"best_config,omitempty"`
	BestScore  float64 `json:"best_cv_score,omitempty"`
}

// Evaluate scores the fitted pipeline once on the evaluation set. The
// pipeline is read-only here; trainMajority is the majority class of the
// training set, used for the null-accuracy baseline.
func Evaluate(p *Pipeline, trainMajority corpus.Label, eval corpus.Dataset) (*Report, error) {
	if len(eval) == 0 {
		return nil, fmt.Errorf("evaluate: empty evaluation set")
	}

	pred, err := p.Predict(eval)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	labels := corpus.Labels()
	k := len(labels)

	cm := ConfusionMatrix{
		Labels:    labels,
		Counts:    make([][]int, k),
		RowTotals: make([]int, k),
		ColTotals: make([]int, k),
		Total:     len(eval),
	}
	for i := range cm.Counts {
		cm.Counts[i] = make([]int, k)
	}

	correct := 0
	nullCorrect := 0
	for i, it := range eval {
		row := it.Label.Index()
		col := pred[i].Index()
		cm.Counts[row][col]++
		cm.RowTotals[row]++
		cm.ColTotals[col]++
		if row == col {
			correct++
		}
		if it.Label == trainMajority {
			nullCorrect++
		}
	}

	report := &Report{
		Accuracy:      float64(correct) / float64(len(eval)),
		NullAccuracy:  float64(nullCorrect) / float64(len(eval)),
		MajorityLabel: trainMajority,
		Confusion:     cm,
		Classes:       make([]ClassMetrics, k),
	}
	report.AccuracyDelta = report.Accuracy - report.NullAccuracy

	var weightedP, weightedR, weightedF float64
	for c := 0; c < k; c++ {
		m := ClassMetrics{Label: labels[c], Support: cm.RowTotals[c]}

		tp := float64(cm.Counts[c][c])
		if cm.ColTotals[c] > 0 {
			m.Precision = tp / float64(cm.ColTotals[c])
		}
		if cm.RowTotals[c] > 0 {
			m.Recall = tp / float64(cm.RowTotals[c])
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}

		weight := float64(m.Support) / float64(len(eval))
		weightedP += weight * m.Precision
		weightedR += weight * m.Recall
		weightedF += weight * m.F1
		report.Classes[c] = m
	}
	report.WeightedAvg = ClassMetrics{
		Label:     "weighted_avg",
		Precision: weightedP,
		Recall:    weightedR,
		F1:        weightedF,
		Support:   len(eval),
	}

	return report, nil
}

// String renders the report as a human-readable text table.
func (r *Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "accuracy        %.4f\n", r.Accuracy)
	fmt.Fprintf(&b, "null accuracy   %.4f (majority class %q)\n", r.NullAccuracy, r.MajorityLabel)
	fmt.Fprintf(&b, "accuracy delta  %+.4f\n\n", r.AccuracyDelta)

	b.WriteString("confusion matrix (rows: true, cols: predicted)\n")
	fmt.Fprintf(&b, "%-10s", "")
	for _, l := range r.Confusion.Labels {
		fmt.Fprintf(&b, "%10s", l)
	}
	fmt.Fprintf(&b, "%10s\n", "total")
	for i, l := range r.Confusion.Labels {
		fmt.Fprintf(&b, "%-10s", l)
		for j := range r.Confusion.Labels {
			fmt.Fprintf(&b, "%10d", r.Confusion.Counts[i][j])
		}
		fmt.Fprintf(&b, "%10d\n", r.Confusion.RowTotals[i])
	}
	fmt.Fprintf(&b, "%-10s", "total")
	for j := range r.Confusion.Labels {
		fmt.Fprintf(&b, "%10d", r.Confusion.ColTotals[j])
	}
	fmt.Fprintf(&b, "%10d\n\n", r.Confusion.Total)

	fmt.Fprintf(&b, "%-14s%10s%10s%10s%10s\n", "class", "precision", "recall", "f1", "support")
	for _, m := range r.Classes {
		fmt.Fprintf(&b, "%-14s%10.4f%10.4f%10.4f%10d\n", m.Label, m.Precision, m.Recall, m.F1, m.Support)
	}
	m := r.WeightedAvg
	fmt.Fprintf(&b, "%-14s%10.4f%10.4f%10.4f%10d\n", m.Label, m.Precision, m.Recall, m.F1, m.Support)

	return b.String()
}

// SaveJSON writes the report to a timestamped file in dir and returns the
// path.
func (r *Report) SaveJSON(dir string) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	random := uuid.New().String()[:8]
	path := filepath.Join(dir, fmt.Sprintf("report_%s_%s.json", timestamp, random))

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
