package corpus

import (
	"context"
	"errors"
	"testing"
	"time"
)

// MockSourceClient pages through a fixed set of record batches.
type MockSourceClient struct {
	Pages     [][]Record
	FetchFunc func(ctx context.Context, cursor string) ([]Record, string, error)
	CallCount int
}

func (m *MockSourceClient) FetchPage(ctx context.Context, cursor string) ([]Record, string, error) {
	m.CallCount++
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, cursor)
	}

	page := 0
	if cursor != "" {
		page = int(cursor[0] - '0')
	}
	if page >= len(m.Pages) {
		return nil, "", nil
	}

	next := ""
	if page+1 < len(m.Pages) {
		next = string(rune('0' + page + 1))
	}
	return m.Pages[page], next, nil
}

func TestLoaderPaginatesToTerminalPage(t *testing.T) {
	mock := &MockSourceClient{
		Pages: [][]Record{
			{{Text: "love it", Sentiment: "positive"}, {Text: "meh", Sentiment: "neutral"}},
			{{Text: "hate it", Sentiment: "negative"}},
		},
	}

	dataset, err := NewLoader(mock).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(dataset) != 3 {
		t.Errorf("expected 3 items, got %d", len(dataset))
	}
	if mock.CallCount != 2 {
		t.Errorf("expected 2 page fetches, got %d", mock.CallCount)
	}
	if dataset[2].Label != Negative {
		t.Errorf("expected third item negative, got %s", dataset[2].Label)
	}
}

func TestLoaderEmptyResult(t *testing.T) {
	mock := &MockSourceClient{Pages: nil}

	_, err := NewLoader(mock).Load(context.Background())
	if !errors.Is(err, ErrEmptyResult) {
		t.Errorf("expected ErrEmptyResult, got %v", err)
	}
}

func TestLoaderMalformedRecord(t *testing.T) {
	tests := []struct {
		name   string
		record Record
	}{
		{"unknown label", Record{Text: "hello", Sentiment: "ecstatic"}},
		{"empty text", Record{Text: "", Sentiment: "positive"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockSourceClient{Pages: [][]Record{{tt.record}}}
			_, err := NewLoader(mock).Load(context.Background())
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("expected ErrMalformedRecord, got %v", err)
			}
		})
	}
}

func TestLoaderSourceUnavailable(t *testing.T) {
	mock := &MockSourceClient{
		FetchFunc: func(ctx context.Context, cursor string) ([]Record, string, error) {
			return nil, "", errors.New("connection refused")
		},
	}

	_, err := NewLoader(mock).Load(context.Background())
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestLoaderContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	mock := &MockSourceClient{
		FetchFunc: func(ctx context.Context, cursor string) ([]Record, string, error) {
			<-ctx.Done()
			return nil, "", ctx.Err()
		},
	}

	_, err := NewLoader(mock).Load(ctx)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable on timeout, got %v", err)
	}
}
