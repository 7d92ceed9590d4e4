package pitboard

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcrouch/pitboard/irsdk"
)

type simStub struct {
	callbacks irsdk.Callbacks
	startChan chan struct{}
	fnChan    chan func()
}

func createSimStub() *simStub {
	return &simStub{
		startChan: make(chan struct{}, 1),
		fnChan:    make(chan func()),
	}
}

func (s *simStub) Close() error {
	return nil
}

func (s *simStub) Start(ctx context.Context, cb irsdk.Callbacks) error {
	s.callbacks = cb
	s.startChan <- struct{}{}
	for {
		select {
		case fn := <-s.fnChan:
			fn()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func TestRunSim(t *testing.T) {
	driverChan := make(chan driverUpdate, channelBufferSize)
	connChan := make(chan bool, connBufferSize)

	origSimConnect := simConnect
	defer func() {
		simConnect = origSimConnect
	}()

	stub := createSimStub()
	simConnect = func() (SimConnection, error) {
		return stub, nil
	}

	simRetryable := &simRetryable{
		sendChan: driverChan,
		connChan: connChan,
	}

	// close before opening
	assert.NoError(t, simRetryable.Close())
	assert.False(t, <-connChan)

	assert.NoError(t, simRetryable.Open())
	assert.True(t, <-connChan)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		_ = simRetryable.Start(ctx)
		wg.Done()
	}()
	<-stub.startChan

	stub.fnChan <- func() {
		stub.callbacks.Driver(irsdk.Driver{
			UserName:    "Test Driver",
			IRating:     3200,
			LicString:   "A 4.12",
			BestLapTime: 83.4567,
		})
	}

	data := <-driverChan
	assert.Equal(t, "Test Driver", data.DisplayName)
	assert.Equal(t, 3200, data.IRating)
	assert.Equal(t, "A 4.12", data.LicString)
	assert.Equal(t, 83.4567, data.BestLapTime)

	cancel()
	wg.Wait()
}

func TestRunSimConnectFailure(t *testing.T) {
	origSimConnect := simConnect
	defer func() {
		simConnect = origSimConnect
	}()

	simConnect = func() (SimConnection, error) {
		return nil, irsdk.ErrSimNotRunning
	}

	simRetryable := &simRetryable{
		sendChan: make(chan driverUpdate, channelBufferSize),
		connChan: make(chan bool, connBufferSize),
	}
	assert.Error(t, simRetryable.Open())
}
