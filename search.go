package sentiment

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/FrenchMajesty/sentiment-pipeline/corpus"
)

// failureScore marks a combination whose fit failed. Valid accuracies live
// in [0,1], so it always loses the selection.
const failureScore = -1

const (
	defaultFolds = 3
	defaultSeed  = 1
)

// SearchConfig tunes the grid search. Zero values take the documented
// defaults.
type SearchConfig struct {
	// Folds is the cross-validation fold count k. Defaults to 3; values
	// below 2 are rejected by Run.
	Folds int

	// Seed drives fold assignment. A fixed seed makes the whole search
	// reproducible. Defaults to 1.
	Seed int64

	// Workers bounds concurrent (combination, fold) evaluations.
	// Values below 1 mean fully sequential.
	Workers int
}

func (c *SearchConfig) applyDefaults() {
	if c.Folds == 0 {
		c.Folds = defaultFolds
	}
	if c.Seed == 0 {
		c.Seed = defaultSeed
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
}

// ComboRecord is the per-combination outcome of a search.
type ComboRecord struct {
	// Index is the combination's position in grid enumeration order.
	Index int `json:"index"`

	Config     Config    `json:"config"`
	FoldScores []float64 `json:"fold_scores"`

	// MeanScore is the mean held-out accuracy across folds, or -1 when
	// the combination failed.
	MeanScore float64 `json:"mean_score"`

	// Err names the failure for a failed combination, empty otherwise.
	Err string `json:"error,omitempty"`
}

// Failed reports whether any fold of this combination failed to fit.
func (r ComboRecord) Failed() bool {
	return r.Err != ""
}

// SearchResult is the Done state of a finished search.
type SearchResult struct {
	// Best is the winning configuration and BestScore its mean CV
	// accuracy.
	Best      Config  `json:"best"`
	BestIndex int     `json:"best_index"`
	BestScore float64 `json:"best_score"`

	// Pipeline is refitted at Best on the entire training set.
	Pipeline *Pipeline `json:"-"`

	// Records holds every combination's scores in enumeration order.
	Records []ComboRecord `json:"records"`
}

// GridSearch exhaustively evaluates a Grid with k-fold cross-validation.
type GridSearch struct {
	grid Grid
	cfg  SearchConfig
}

// NewGridSearch builds a search over grid.
func NewGridSearch(grid Grid, cfg SearchConfig) *GridSearch {
	cfg.applyDefaults()
	return &GridSearch{grid: grid, cfg: cfg}
}

// foldTask is one (combination, fold) evaluation.
type foldTask struct {
	combo int
	fold  int
}

// foldOutcome is the result cell for one task. Cells are pre-sized and each
// task writes only its own cell, so workers share no mutable state.
type foldOutcome struct {
	score float64
	err   error
}

// Run walks the search to completion: expand the grid, evaluate every
// combination over every fold, select the best mean score, and refit the
// winner on the full training set.
//
// A combination whose fit fails on any fold is recorded with the worst
// possible score and the search continues; only a grid where every
// combination fails aborts with ErrSearchExhausted. Ties on mean score go to
// the earliest combination in grid enumeration order, regardless of worker
// completion order.
func (s *GridSearch) Run(ctx context.Context, train corpus.Dataset) (*SearchResult, error) {
	combos, err := s.grid.Expand()
	if err != nil {
		return nil, err
	}
	if s.cfg.Folds < 2 {
		return nil, fmt.Errorf("grid search: fold count %d must be at least 2", s.cfg.Folds)
	}
	if len(train) < s.cfg.Folds {
		return nil, fmt.Errorf("grid search: %d training items cannot fill %d folds", len(train), s.cfg.Folds)
	}

	folds := foldIndices(len(train), s.cfg.Folds, s.cfg.Seed)
	log.Printf("grid search: %d combinations x %d folds = %d fits", len(combos), len(folds), len(combos)*len(folds))

	outcomes, err := s.evaluateAll(ctx, combos, folds, train)
	if err != nil {
		return nil, err
	}

	records := collectRecords(combos, folds, outcomes)

	bestIndex := -1
	bestScore := 0.0
	for _, rec := range records {
		if rec.Failed() {
			log.Printf("grid search: combination %d failed: %s", rec.Index, rec.Err)
			continue
		}
		if bestIndex == -1 || rec.MeanScore > bestScore {
			bestIndex = rec.Index
			bestScore = rec.MeanScore
		}
	}
	if bestIndex == -1 {
		return nil, fmt.Errorf("%w: %d combinations", ErrSearchExhausted, len(combos))
	}

	refit, err := Fit(combos[bestIndex], train)
	if err != nil {
		return nil, fmt.Errorf("grid search: refit of best combination %d: %w", bestIndex, err)
	}

	return &SearchResult{
		Best:      combos[bestIndex],
		BestIndex: bestIndex,
		BestScore: bestScore,
		Pipeline:  refit,
		Records:   records,
	}, nil
}

// evaluateAll runs every (combination, fold) task on a fixed-size worker
// pool, writing each result into its pre-sized cell.
func (s *GridSearch) evaluateAll(ctx context.Context, combos []Config, folds [][]int, train corpus.Dataset) ([][]foldOutcome, error) {
	outcomes := make([][]foldOutcome, len(combos))
	for i := range outcomes {
		outcomes[i] = make([]foldOutcome, len(folds))
	}

	tasks := make(chan foldTask)
	var wg sync.WaitGroup

	for w := 0; w < s.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				score, err := evaluateFold(combos[task.combo], folds, task.fold, train)
				outcomes[task.combo][task.fold] = foldOutcome{score: score, err: err}
			}
		}()
	}

	var ctxErr error
feed:
	for combo := range combos {
		for fold := range folds {
			if ctx.Err() != nil {
				ctxErr = ctx.Err()
				break feed
			}
			select {
			case <-ctx.Done():
				ctxErr = ctx.Err()
				break feed
			case tasks <- foldTask{combo: combo, fold: fold}:
			}
		}
	}
	close(tasks)
	wg.Wait()

	if ctxErr != nil {
		return nil, fmt.Errorf("grid search: %w", ctxErr)
	}
	return outcomes, nil
}

// evaluateFold fits cfg on everything outside the held-out fold and scores
// accuracy on the held-out fold. The held-out items never reach the fit.
func evaluateFold(cfg Config, folds [][]int, fold int, train corpus.Dataset) (float64, error) {
	heldOut := make(corpus.Dataset, 0, len(folds[fold]))
	for _, idx := range folds[fold] {
		heldOut = append(heldOut, train[idx])
	}

	fitSet := make(corpus.Dataset, 0, len(train)-len(heldOut))
	for f, indices := range folds {
		if f == fold {
			continue
		}
		for _, idx := range indices {
			fitSet = append(fitSet, train[idx])
		}
	}

	p, err := Fit(cfg, fitSet)
	if err != nil {
		return failureScore, err
	}
	return p.Accuracy(heldOut)
}

// collectRecords aggregates fold outcomes per combination, in enumeration
// order.
func collectRecords(combos []Config, folds [][]int, outcomes [][]foldOutcome) []ComboRecord {
	records := make([]ComboRecord, len(combos))
	for i, cfg := range combos {
		rec := ComboRecord{
			Index:      i,
			Config:     cfg,
			FoldScores: make([]float64, len(folds)),
		}

		var sum float64
		for f, out := range outcomes[i] {
			rec.FoldScores[f] = out.score
			sum += out.score
			if out.err != nil && rec.Err == "" {
				rec.Err = fmt.Sprintf("fold %d: %v", f, out.err)
			}
		}

		if rec.Failed() {
			rec.MeanScore = failureScore
		} else {
			rec.MeanScore = sum / float64(len(folds))
		}
		records[i] = rec
	}
	return records
}

// foldIndices partitions the indices [0, n) into k disjoint, near-equal
// folds over a seeded shuffle. Every index lands in exactly one fold.
func foldIndices(n, k int, seed int64) [][]int {
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	folds := make([][]int, k)
	base := n / k
	extra := n % k

	pos := 0
	for f := 0; f < k; f++ {
		size := base
		if f < extra {
			size++
		}
		folds[f] = perm[pos : pos+size]
		pos += size
	}
	return folds
}
