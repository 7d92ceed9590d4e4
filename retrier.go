package pitboard

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

var retrySleep = time.Second

// Retryable is a telemetry source that can be re-opened after a
// failure.
type Retryable interface {
	Open() error
	Close() error
	Start(ctx context.Context) error
	Name() string
}

// retry keeps r running, reconnecting whenever Open or Start fails,
// until ctx is cancelled.
func retry(ctx context.Context, r Retryable) error {
	for {
		if err := r.Open(); err != nil {
			log.WithField("err", err).Warnf("%s: unable to open", r.Name())
		} else {
			err := r.Start(ctx)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.WithField("err", err).Errorf("%s: reconnecting due to error", r.Name())
			if err := r.Close(); err != nil {
				log.WithField("err", err).Warnf("%s: unable to close", r.Name())
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retrySleep):
		}
	}
}
