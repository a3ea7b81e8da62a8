package llm

import (
	"context"
	"time"
)

// GenerateJSONWithRetry calls GenerateJSON up to attempts times with a
// doubling backoff between tries. Context cancellation stops the loop
// immediately.
func GenerateJSONWithRetry(ctx context.Context, client Client, prompt string, tier ModelTier, attempts int) (string, error) {
	if attempts <= 0 {
		attempts = 1
	}

	backoff := 500 * time.Millisecond
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		text, err := client.GenerateJSON(ctx, prompt, tier)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", lastErr
}
