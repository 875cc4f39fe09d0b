// Package linear provides the multinomial logistic-regression classifier
// used at the end of the sentiment pipeline.
//
// Multiclass handling is native multinomial (softmax), not one-vs-rest.
// Training is full-batch gradient descent from a zero initialization, so a
// fit is fully deterministic for given inputs and config.
package linear

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrDegenerateFit indicates training produced non-finite weights. Grid
// search treats this as a recoverable per-configuration failure.
var ErrDegenerateFit = errors.New("logistic: non-finite weights during fit")

// Config configures a LogisticRegression. Zero values take the documented
// defaults.
type Config struct {
	// C is the inverse regularization strength. Smaller values regularize
	// harder. Must be positive; defaults to 1.
	C float64 `json:"c"`

	// MaxIter caps the gradient-descent iterations. Defaults to 200.
	MaxIter int `json:"max_iter,omitempty"`

	// LearningRate is the gradient step size. Defaults to 0.1.
	LearningRate float64 `json:"learning_rate,omitempty"`

	// Tol stops training early once the largest parameter update falls
	// below it. Defaults to 1e-5.
	Tol float64 `json:"tol,omitempty"`
}

func (c Config) withDefaults() (Config, error) {
	if c.C == 0 {
		c.C = 1
	}
	if c.MaxIter == 0 {
		c.MaxIter = 200
	}
	if c.LearningRate == 0 {
		c.LearningRate = 0.1
	}
	if c.Tol == 0 {
		c.Tol = 1e-5
	}
	if c.C < 0 {
		return c, fmt.Errorf("logistic: C must be positive, got %v", c.C)
	}
	return c, nil
}

// LogisticRegression is a softmax classifier over dense feature matrices.
type LogisticRegression struct {
	cfg      Config
	nClasses int
	weights  *mat.Dense // features x classes
	bias     []float64  // per class
}

// New builds an unfitted classifier from cfg.
func New(cfg Config) *LogisticRegression {
	return &LogisticRegression{cfg: cfg}
}

// Fit trains on X (samples x features) with class indices y in [0, nClasses).
// The L2 penalty applies to the weights only, scaled by 1/C.
func (l *LogisticRegression) Fit(X *mat.Dense, y []int, nClasses int) error {
	cfg, err := l.cfg.withDefaults()
	if err != nil {
		return err
	}
	l.cfg = cfg

	n, d := X.Dims()
	if n == 0 || n != len(y) {
		return fmt.Errorf("logistic: %d samples vs %d labels", n, len(y))
	}
	if nClasses < 2 {
		return fmt.Errorf("logistic: need at least 2 classes, got %d", nClasses)
	}
	for i, c := range y {
		if c < 0 || c >= nClasses {
			return fmt.Errorf("logistic: label %d out of range at sample %d", c, i)
		}
	}

	l.nClasses = nClasses
	l.weights = mat.NewDense(d, nClasses, nil)
	l.bias = make([]float64, nClasses)

	lambda := 1 / (l.cfg.C * float64(n))
	grad := mat.NewDense(d, nClasses, nil)
	residual := mat.NewDense(n, nClasses, nil)

	for iter := 0; iter < l.cfg.MaxIter; iter++ {
		proba := l.scores(X)
		softmaxRows(proba)

		// residual = proba - onehot(y)
		residual.Copy(proba)
		for i, c := range y {
			residual.Set(i, c, residual.At(i, c)-1)
		}

		grad.Mul(X.T(), residual)

		maxStep := 0.0
		for j := 0; j < d; j++ {
			for k := 0; k < nClasses; k++ {
				g := grad.At(j, k)/float64(n) + lambda*l.weights.At(j, k)
				step := l.cfg.LearningRate * g
				l.weights.Set(j, k, l.weights.At(j, k)-step)
				if s := math.Abs(step); s > maxStep {
					maxStep = s
				}
			}
		}
		for k := 0; k < nClasses; k++ {
			var g float64
			for i := 0; i < n; i++ {
				g += residual.At(i, k)
			}
			step := l.cfg.LearningRate * g / float64(n)
			l.bias[k] -= step
			if s := math.Abs(step); s > maxStep {
				maxStep = s
			}
		}

		if !l.finite() {
			return fmt.Errorf("%w (C=%v, iter=%d)", ErrDegenerateFit, l.cfg.C, iter)
		}
		if maxStep < l.cfg.Tol {
			break
		}
	}
	return nil
}

// Predict returns the argmax class index per row of X. Ties go to the lower
// class index.
func (l *LogisticRegression) Predict(X *mat.Dense) ([]int, error) {
	if l.weights == nil {
		return nil, errors.New("logistic: predict before fit")
	}

	scores := l.scores(X)
	n, _ := scores.Dims()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		best, bestScore := 0, scores.At(i, 0)
		for k := 1; k < l.nClasses; k++ {
			if s := scores.At(i, k); s > bestScore {
				best, bestScore = k, s
			}
		}
		out[i] = best
	}
	return out, nil
}

// PredictProba returns per-class softmax probabilities, one row per sample.
func (l *LogisticRegression) PredictProba(X *mat.Dense) (*mat.Dense, error) {
	if l.weights == nil {
		return nil, errors.New("logistic: predict before fit")
	}
	scores := l.scores(X)
	softmaxRows(scores)
	return scores, nil
}

// scores computes X*W + b.
func (l *LogisticRegression) scores(X *mat.Dense) *mat.Dense {
	n, _ := X.Dims()
	out := mat.NewDense(n, l.nClasses, nil)
	out.Mul(X, l.weights)
	for i := 0; i < n; i++ {
		for k := 0; k < l.nClasses; k++ {
			out.Set(i, k, out.At(i, k)+l.bias[k])
		}
	}
	return out
}

func (l *LogisticRegression) finite() bool {
	for _, b := range l.bias {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return false
		}
	}
	raw := l.weights.RawMatrix()
	for _, w := range raw.Data {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return false
		}
	}
	return true
}

// softmaxRows replaces each row of m with its softmax, shifting by the row
// max for numeric stability.
func softmaxRows(m *mat.Dense) {
	n, k := m.Dims()
	for i := 0; i < n; i++ {
		rowMax := m.At(i, 0)
		for j := 1; j < k; j++ {
			if v := m.At(i, j); v > rowMax {
				rowMax = v
			}
		}
		var sum float64
		for j := 0; j < k; j++ {
			e := math.Exp(m.At(i, j) - rowMax)
			m.Set(i, j, e)
			sum += e
		}
		for j := 0; j < k; j++ {
			m.Set(i, j, m.At(i, j)/sum)
		}
	}
}
