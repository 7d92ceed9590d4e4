package pitboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunTestModeStopsOnCancel(t *testing.T) {
	oldTick := testModeTick
	testModeTick = time.Millisecond
	defer func() { testModeTick = oldTick }()

	pb := New()
	ctx, cancel := context.WithCancel(context.Background())
	pb.runTestMode(ctx)

	assert.True(t, <-pb.connChan)
	update := <-pb.driverChan
	assert.NotZero(t, update.IRating)

	// stop reading so the generator fills the buffer and blocks on its
	// next send, then cancel while it is blocked
	time.Sleep(time.Millisecond * 20)
	cancel()
	time.Sleep(time.Millisecond * 20)

	// at most one update was buffered before the cancel
	select {
	case <-pb.driverChan:
	default:
	}

	select {
	case <-pb.driverChan:
		t.Fatal("generator kept producing after cancel")
	case <-time.After(time.Millisecond * 50):
	}
}
