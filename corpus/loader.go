package corpus

import (
	"context"
	"fmt"
	"log"
)

// Record is one raw item from the source API, before validation.
type Record struct {
	Text      string
	Sentiment string
}

// SourceClient fetches one page of labeled records from the corpus API.
// An empty nextCursor signals the terminal page.
type SourceClient interface {
	FetchPage(ctx context.Context, cursor string) (records []Record, nextCursor string, err error)
}

// Loader retrieves the full labeled corpus from a paginated source.
type Loader struct {
	client SourceClient
}

// NewLoader creates a Loader over the given source client.
func NewLoader(client SourceClient) *Loader {
	return &Loader{client: client}
}

// Load fetches every page from the source until the terminal page and
// validates each record. Cancellation and deadlines come from ctx; an expired
// context surfaces as ErrSourceUnavailable.
func (l *Loader) Load(ctx context.Context) (Dataset, error) {
	var (
		dataset Dataset
		cursor  string
		pages   int
	)

	for {
		records, next, err := l.client.FetchPage(ctx, cursor)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, ctx.Err())
			}
			return nil, fmt.Errorf("%w: page %d: %v", ErrSourceUnavailable, pages+1, err)
		}
		pages++

		for _, r := range records {
			item, err := validateRecord(r)
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", pages, err)
			}
			dataset = append(dataset, item)
		}

		if next == "" || len(records) == 0 {
			break
		}
		cursor = next
	}

	if len(dataset) == 0 {
		return nil, ErrEmptyResult
	}

	log.Printf("corpus loader: retrieved %d items across %d pages", len(dataset), pages)
	return dataset, nil
}

func validateRecord(r Record) (Item, error) {
	if r.Text == "" {
		return Item{}, fmt.Errorf("%w: empty text", ErrMalformedRecord)
	}
	label, err := ParseLabel(r.Sentiment)
	if err != nil {
		return Item{}, err
	}
	return Item{Text: r.Text, Label: label}, nil
}
