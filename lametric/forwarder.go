package lametric

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/rcrouch/pitboard"
	"github.com/rcrouch/pitboard/config"
)

// Forwarder pushes ratings notifications to a LaMetric device. It
// implements pitboard.Forwarder.
type Forwarder struct {
	client *Client
	store  *config.Store

	// id of the most recent notification still on the device
	lastID string
}

func NewForwarder(client *Client, store *config.Store) *Forwarder {
	return &Forwarder{
		client: client,
		store:  store,
	}
}

// Forward sends newSnapshot to the device. When prevSnapshot is non-nil
// and equal to newSnapshot the send is skipped. The previously posted
// notification is dismissed first so ratings do not pile up in the
// device queue.
func (f *Forwarder) Forward(ctx context.Context, prevSnapshot *pitboard.Snapshot, newSnapshot *pitboard.Snapshot) error {
	if prevSnapshot != nil && *prevSnapshot == *newSnapshot {
		return nil
	}
	s := f.store.Get()
	if err := s.Validate(); err != nil {
		return err
	}
	if f.lastID != "" {
		if err := f.client.Dismiss(ctx, s.DeviceIP, s.APIKey, f.lastID); err != nil {
			log.WithField("err", err).Warn("unable to dismiss previous notification")
		}
		f.lastID = ""
	}
	id, err := f.client.Send(ctx, s.DeviceIP, s.APIKey, RatingsNotification(*newSnapshot))
	if err != nil {
		return err
	}
	f.lastID = id
	return nil
}
