package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetrySucceedsAfterTransientFailure(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection reset")}},
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithRetry(mock, fastRetry(3))

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetryExhaustsBudget(t *testing.T) {
	mock := NewMockProvider() // empty queue: every call is an outage
	p := WithRetry(mock, fastRetry(3))

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetryDoesNotRetryMaxTokens(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrMaxTokensExceeded{Content: []byte(`{"trunc`)}},
	)
	p := WithRetry(mock, fastRetry(3))

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryInvalidResponseOnlyOnce(t *testing.T) {
	bad := &ErrInvalidResponse{Content: []byte(`{}`), Err: errors.New("missing field")}
	mock := NewMockProvider(
		MockResponse{Err: bad},
		MockResponse{Err: bad},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithRetry(mock, fastRetry(5))

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, mock.CallCount(), "second invalid response must stop the retry loop")
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := NewMockProvider()
	p := WithRetry(mock, fastRetry(5))

	_, err := p.Generate(ctx, Request{})
	require.Error(t, err)
	assert.LessOrEqual(t, mock.CallCount(), 2)
}

func TestRetryWaitRespectsRetryAfter(t *testing.T) {
	r := &retryProvider{config: fastRetry(3)}

	w := r.wait(0, &ErrRateLimit{RetryAfter: 42 * time.Millisecond})
	assert.Equal(t, 42*time.Millisecond, w)
}

func TestRetryWaitIsBounded(t *testing.T) {
	r := &retryProvider{config: RetryConfig{
		MaxAttempts: 10,
		InitialWait: time.Second,
		MaxWait:     2 * time.Second,
		Multiplier:  2.0,
	}}

	for attempt := range 10 {
		w := r.wait(attempt, errors.New("boom"))
		assert.LessOrEqual(t, w, 2*time.Second+2*time.Second/5)
		assert.GreaterOrEqual(t, w, time.Duration(0))
	}
}
