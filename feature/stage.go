// Package feature turns raw text into numeric feature matrices.
//
// Two stage kinds exist. A TextStage rewrites text before extraction (the
// mention normalizer). A VectorStage learns state from the documents it is
// fitted on and maps documents to numeric columns (the count vectorizer, the
// length feature). Union concatenates the columns of several VectorStages in
// a fixed order so every item gets one flat feature vector.
//
// Stages are constructed fresh from value-type configs for every pipeline
// fit; a fitted stage is never reconfigured or shared between fits.
package feature

import "gonum.org/v1/gonum/mat"

// TextStage rewrites raw documents before tokenization.
type TextStage interface {
	Transform(docs []string) []string
}

// VectorStage learns from the fit documents only and emits a fixed number of
// numeric columns per document.
type VectorStage interface {
	// Fit learns stage state (e.g. a vocabulary) from docs.
	Fit(docs []string) error

	// Transform maps docs to a len(docs) x Width() matrix. Must only be
	// called after Fit.
	Transform(docs []string) (*mat.Dense, error)

	// Width reports the number of columns Transform will produce. Only
	// meaningful after Fit.
	Width() int
}
