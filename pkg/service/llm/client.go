package llm

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/spendgraph/spendgraph/pkg/utils/logging"
)

// retryWaits is the backoff schedule applied between retries of a
// failed generation call.
var retryWaits = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	4 * time.Second,
}

// Generate runs a one-shot JSON-typed completion against the LLM.
// Transport and server errors are retried with exponential backoff.
// A malformed response body is not an error at this layer; callers
// parse the returned text and decide whether to fall back.
func Generate(ctx context.Context, client gollem.LLMClient, prompt string) (string, error) {
	if client == nil {
		return "", goerr.New("LLM client is not configured")
	}

	var lastErr error
	for attempt := 0; attempt <= len(retryWaits); attempt++ {
		if attempt > 0 {
			wait := retryWaits[attempt-1]
			logging.From(ctx).Debug("retrying LLM call",
				"attempt", attempt, "wait", wait, "error", lastErr)
			select {
			case <-ctx.Done():
				return "", goerr.Wrap(ctx.Err(), "LLM call canceled")
			case <-time.After(wait):
			}
		}

		session, err := client.NewSession(ctx,
			gollem.WithSessionContentType(gollem.ContentTypeJSON),
		)
		if err != nil {
			lastErr = err
			continue
		}

		resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Texts) == 0 {
			lastErr = goerr.New("LLM returned empty response")
			continue
		}

		return resp.Texts[0], nil
	}

	return "", goerr.Wrap(lastErr, "LLM call failed after retries",
		goerr.V("attempts", len(retryWaits)+1))
}
