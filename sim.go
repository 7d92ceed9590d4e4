package pitboard

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/rcrouch/pitboard/irsdk"
)

// to allow testing
var simConnect = func() (SimConnection, error) {
	return irsdk.Connect()
}

type simRetryable struct {
	c        SimConnection
	sendChan chan<- driverUpdate
	connChan chan<- bool
}

func (s *simRetryable) Name() string {
	return "sim"
}

func (s *simRetryable) Open() error {
	c, err := simConnect()
	if err != nil {
		return err
	}
	s.c = c
	s.notify(true)
	return nil
}

func (s *simRetryable) Close() error {
	s.notify(false)
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}

func (s *simRetryable) notify(up bool) {
	select {
	case s.connChan <- up:
	default:
	}
}

func (s *simRetryable) Start(ctx context.Context) error {
	return s.c.Start(ctx, irsdk.Callbacks{
		Driver: func(d irsdk.Driver) {
			update := driverUpdate{
				DisplayName: d.UserName,
				IRating:     d.IRating,
				LicString:   d.LicString,
				BestLapTime: d.BestLapTime,
			}
			select {
			case s.sendChan <- update:
			default:
			}
		},
	})
}

func runSim(ctx context.Context, sendChan chan<- driverUpdate, connChan chan<- bool) {
	err := retry(ctx, &simRetryable{
		sendChan: sendChan,
		connChan: connChan,
	})
	if err != nil {
		log.Errorf("sim done: %v", err)
	}
}
