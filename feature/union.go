package feature

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Union is a VectorStage concatenating the columns of its member stages in
// construction order. The order is fixed at construction and independent of
// any stage's configuration, so feature columns line up across pipeline fits.
type Union struct {
	stages []VectorStage
}

// NewUnion builds a combiner over stages. Column blocks appear in the given
// order.
func NewUnion(stages ...VectorStage) *Union {
	return &Union{stages: stages}
}

// Fit fits every member stage on the same documents. The first stage error
// aborts the fit.
func (u *Union) Fit(docs []string) error {
	for i, s := range u.stages {
		if err := s.Fit(docs); err != nil {
			return fmt.Errorf("union stage %d: %w", i, err)
		}
	}
	return nil
}

// Transform concatenates each stage's columns. Any stage error aborts the
// whole transform; no partial rows are produced.
func (u *Union) Transform(docs []string) (*mat.Dense, error) {
	if len(docs) == 0 {
		return nil, errors.New("union: no documents to transform")
	}

	out := mat.NewDense(len(docs), u.Width(), nil)
	col := 0
	for i, s := range u.stages {
		block, err := s.Transform(docs)
		if err != nil {
			return nil, fmt.Errorf("union stage %d: %w", i, err)
		}
		w := s.Width()
		out.Slice(0, len(docs), col, col+w).(*mat.Dense).Copy(block)
		col += w
	}
	return out, nil
}

// Width is the sum of the member stage widths.
func (u *Union) Width() int {
	total := 0
	for _, s := range u.stages {
		total += s.Width()
	}
	return total
}
