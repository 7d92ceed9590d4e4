package pitboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fakeRetryable struct {
	mu     sync.Mutex
	opens  int
	closes int
	starts int
}

func (f *fakeRetryable) Name() string {
	return "fake"
}

func (f *fakeRetryable) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens++
	return nil
}

func (f *fakeRetryable) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

func (f *fakeRetryable) Start(ctx context.Context) error {
	f.mu.Lock()
	n := f.starts
	f.starts++
	f.mu.Unlock()
	if n == 0 {
		return errors.New("boom")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeRetryable) counts() (opens, closes, starts int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens, f.closes, f.starts
}

func TestRetryReconnects(t *testing.T) {
	origSleep := retrySleep
	retrySleep = time.Millisecond
	defer func() {
		retrySleep = origSleep
	}()

	fake := &fakeRetryable{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- retry(ctx, fake)
	}()

	assert.True(t, waitFor(func() bool {
		_, _, starts := fake.counts()
		return starts >= 2
	}), "expected a reopen after the first start failed")

	opens, closes, _ := fake.counts()
	assert.GreaterOrEqual(t, opens, 2)
	assert.GreaterOrEqual(t, closes, 1)

	cancel()
	assert.Equal(t, context.Canceled, <-done)
}
