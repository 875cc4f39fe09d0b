package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		MaxRetries:      3,
		BaseDelay:       time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		BackoffMultiple: 2.0,
	}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	status, body, err := Do(context.Background(), Options{Config: fastConfig(), APIName: "test"},
		func() (int, []byte, error) {
			calls++
			return 200, []byte("ok"), nil
		})

	if err != nil || status != 200 || string(body) != "ok" {
		t.Fatalf("unexpected outcome: %d %q %v", status, body, err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	opts := Options{
		Config:    fastConfig(),
		APIName:   "test",
		Retryable: func(status int, body []byte, err error) bool { return true },
	}

	status, _, err := Do(context.Background(), opts, func() (int, []byte, error) {
		calls++
		if calls < 3 {
			return 500, nil, nil
		}
		return 200, nil, nil
	})

	if err != nil || status != 200 {
		t.Fatalf("unexpected outcome: %d %v", status, err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	calls := 0
	opts := Options{
		Config:    fastConfig(),
		APIName:   "test",
		Retryable: func(status int, body []byte, err error) bool { return false },
	}

	status, _, _ := Do(context.Background(), opts, func() (int, []byte, error) {
		calls++
		return 401, nil, nil
	})

	if status != 401 || calls != 1 {
		t.Errorf("expected single 401 attempt, got status %d after %d calls", status, calls)
	}
}

func TestDoHonorsContextDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := Options{
		Config:    fastConfig(),
		APIName:   "test",
		Retryable: func(status int, body []byte, err error) bool { return true },
	}

	_, _, err := Do(ctx, opts, func() (int, []byte, error) {
		return 0, nil, errors.New("network down")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
