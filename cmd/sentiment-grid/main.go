// Command sentiment-grid fetches the labeled corpus, grid-searches the
// sentiment pipeline with cross-validation, and reports evaluation metrics.
//
// Exit codes: 0 on success, 1 when the corpus source is unavailable or
// empty, 2 when every grid combination failed to fit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	sentiment "github.com/FrenchMajesty/sentiment-pipeline"
	"github.com/FrenchMajesty/sentiment-pipeline/clients/corpusapi"
	"github.com/FrenchMajesty/sentiment-pipeline/corpus"
)

func main() {
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	var (
		baseURL  = flag.String("base-url", os.Getenv("CORPUS_API_URL"), "corpus API base URL")
		apiKey   = flag.String("api-key", os.Getenv("CORPUS_API_KEY"), "corpus API key")
		evalFrac = flag.Float64("eval-frac", 0.25, "fraction of the corpus held out for evaluation")
		folds    = flag.Int("folds", 3, "cross-validation fold count")
		seed     = flag.Int64("seed", 1, "seed for the train/eval split and fold assignment")
		workers  = flag.Int("workers", 1, "parallel (combination, fold) evaluations")
		timeout  = flag.Duration("timeout", 2*time.Minute, "corpus fetch timeout")
		outDir   = flag.String("out", ".", "directory for the JSON report")
	)
	flag.Parse()

	os.Exit(run(*baseURL, *apiKey, *evalFrac, *folds, *seed, *workers, *timeout, *outDir))
}

func run(baseURL, apiKey string, evalFrac float64, folds int, seed int64, workers int, timeout time.Duration, outDir string) int {
	if baseURL == "" {
		log.Print("missing corpus API base URL (set CORPUS_API_URL or -base-url)")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	loader := corpus.NewLoader(corpusapi.NewClient(apiKey, baseURL))
	dataset, err := loader.Load(ctx)
	if err != nil {
		log.Printf("corpus load: %v", err)
		return 1
	}

	train, eval := dataset.Split(evalFrac, seed)
	log.Printf("split: %d training / %d evaluation items", len(train), len(eval))

	search := sentiment.NewGridSearch(sentiment.DefaultGrid(), sentiment.SearchConfig{
		Folds:   folds,
		Seed:    seed,
		Workers: workers,
	})
	result, err := search.Run(context.Background(), train)
	if err != nil {
		log.Printf("grid search: %v", err)
		if errors.Is(err, sentiment.ErrSearchExhausted) {
			return 2
		}
		return 1
	}
	log.Printf("best combination %d with mean CV accuracy %.4f", result.BestIndex, result.BestScore)

	report, err := sentiment.Evaluate(result.Pipeline, train.MajorityLabel(), eval)
	if err != nil {
		log.Printf("evaluate: %v", err)
		return 1
	}
	report.BestConfig = &result.Best
	report.BestScore = result.BestScore

	fmt.Print(report.String())

	path, err := report.SaveJSON(outDir)
	if err != nil {
		log.Printf("saving report: %v", err)
		return 1
	}
	log.Printf("report written to %s", path)
	return 0
}
