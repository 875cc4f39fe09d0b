package feature

import (
	"unicode/utf8"

	"gonum.org/v1/gonum/mat"
)

// LengthConfig configures the text-length feature.
type LengthConfig struct {
	// Active enables the feature. When false the column is emitted as a
	// constant zero rather than removed, so the combined feature width is
	// the same at every grid point.
	Active bool `json:"active"`
}

// LengthFeature is a VectorStage emitting one column: the character count of
// the (already normalized) text, or zero when inactive. The column is always
// present; toggling Active must never change the combined feature width.
type LengthFeature struct {
	cfg LengthConfig
}

// NewLengthFeature builds the stage from its config.
func NewLengthFeature(cfg LengthConfig) *LengthFeature {
	return &LengthFeature{cfg: cfg}
}

// Fit is a no-op; the length feature has no learned state.
func (l *LengthFeature) Fit(docs []string) error {
	return nil
}

// Transform emits a len(docs) x 1 matrix of character counts, or zeros when
// the feature is inactive.
func (l *LengthFeature) Transform(docs []string) (*mat.Dense, error) {
	out := mat.NewDense(len(docs), 1, nil)
	if !l.cfg.Active {
		return out, nil
	}
	for i, d := range docs {
		out.Set(i, 0, float64(utf8.RuneCountInString(d)))
	}
	return out, nil
}

// Width is always 1, regardless of the Active flag.
func (l *LengthFeature) Width() int {
	return 1
}
