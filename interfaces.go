package pitboard

import (
	"context"

	"github.com/rcrouch/pitboard/irsdk"
)

// SimConnection is an open connection to the simulator's live-data
// interface.
type SimConnection interface {
	Close() error
	Start(context.Context, irsdk.Callbacks) error
}

// Forwarder delivers a snapshot to a downstream consumer. A nil
// prevSnapshot requests an unconditional send; otherwise implementations
// may skip delivery when nothing changed.
type Forwarder interface {
	Forward(ctx context.Context, prevSnapshot *Snapshot, newSnapshot *Snapshot) error
}
