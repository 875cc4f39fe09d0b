// Package sentiment composes a social-media sentiment classification
// pipeline and tunes it by exhaustive cross-validated grid search.
//
// The pipeline threads each item through a fixed stage order: mention
// normalization, feature extraction (n-gram counts unioned with a text-length
// column), and a multinomial logistic-regression classifier. Every stage is
// driven by a value-type config struct, and a Grid enumerates candidate
// configs directly as structured values rather than string-keyed parameter
// paths.
//
// A typical run:
//
//	dataset, err := corpus.NewLoader(corpusapi.NewClient(key, url)).Load(ctx)
//	if err != nil { ... }
//	train, eval := dataset.Split(0.25, seed)
//
//	search := sentiment.NewGridSearch(sentiment.DefaultGrid(), sentiment.SearchConfig{Seed: seed})
//	result, err := search.Run(ctx, train)
//	if err != nil { ... }
//
//	report, err := sentiment.Evaluate(result.Pipeline, train.MajorityLabel(), eval)
package sentiment
