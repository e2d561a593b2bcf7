package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stallingProvider hangs until its context is done, like a provider
// whose connection never completes.
type stallingProvider struct{}

func (stallingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stallingProvider) ModelID() string { return "stall" }

func TestTimeoutBoundsHungProvider(t *testing.T) {
	p := WithTimeout(stallingProvider{}, 20*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestTimeoutBoundsRetryLoopToo(t *testing.T) {
	// The deadline wraps outside the retry middleware, so a provider
	// that stalls on every attempt still returns within one bound.
	p := WithTimeout(WithRetry(stallingProvider{}, fastRetry(5)), 20*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTimeoutZeroIsPassthrough(t *testing.T) {
	mock := NewMockProvider()
	assert.Equal(t, Provider(mock), WithTimeout(mock, 0))
}

func TestTimeoutKeepsCallerDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// A generous wrapper bound must not extend a tighter caller deadline.
	p := WithTimeout(stallingProvider{}, time.Hour)

	start := time.Now()
	_, err := p.Generate(ctx, Request{})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
