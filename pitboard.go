package pitboard

import (
	"context"
	"sync"
)

const channelBufferSize = 1

// connection state transitions are rare but must not be dropped, so the
// channel is deeper than the data channels
const connBufferSize = 8

// Pitboard folds driver updates from the simulator into the current
// snapshot and tracks simulator availability.
type Pitboard struct {
	driverChan chan driverUpdate
	connChan   chan bool

	mu            sync.Mutex
	telemetry     Snapshot
	haveTelemetry bool
	simConnected  bool

	testMode bool
}

// Status is a point-in-time view of the hub for UI display.
type Status struct {
	SimConnected bool
	HaveSnapshot bool
	Snapshot     Snapshot
}

func New() *Pitboard {
	return &Pitboard{
		driverChan: make(chan driverUpdate, channelBufferSize),
		connChan:   make(chan bool, connBufferSize),
	}
}

// SetTestMode switches the data source from the simulator to a
// synthetic generator. Must be called before Start.
func (pb *Pitboard) SetTestMode(on bool) {
	pb.testMode = on
}

// Start launches the simulator source and the fold loop.
func (pb *Pitboard) Start(ctx context.Context) {
	if pb.testMode {
		pb.runTestMode(ctx)
	} else {
		go runSim(ctx, pb.driverChan, pb.connChan)
	}
	go pb.run(ctx)
}

func (pb *Pitboard) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case up := <-pb.connChan:
			pb.applyConn(up)
		case d := <-pb.driverChan:
			pb.applyDriver(d)
		}
	}
}

// CheckChannels blocks until a source update arrives and folds it into
// the current state. It reports whether the state changed.
func (pb *Pitboard) CheckChannels() bool {
	select {
	case up := <-pb.connChan:
		return pb.applyConn(up)
	case d := <-pb.driverChan:
		return pb.applyDriver(d)
	}
}

func (pb *Pitboard) applyConn(up bool) (changed bool) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	changed = pb.simConnected != up
	pb.simConnected = up
	if !up {
		// stale ratings must not be sent after the sim exits
		pb.haveTelemetry = false
	}
	return changed
}

func (pb *Pitboard) applyDriver(d driverUpdate) (changed bool) {
	newTelemetry := Snapshot{
		DisplayName: d.DisplayName,
		IRating:     d.IRating,
		BestLapTime: d.BestLapTime,
	}
	newTelemetry.LicenseClass, newTelemetry.SafetyRating = parseLicense(d.LicString)

	pb.mu.Lock()
	defer pb.mu.Unlock()
	if pb.haveTelemetry && pb.telemetry == newTelemetry {
		return false
	}
	pb.telemetry = newTelemetry
	pb.haveTelemetry = true
	return true
}

// Snapshot returns the latest driver snapshot. ok is false until the
// simulator is connected and has delivered one.
func (pb *Pitboard) Snapshot() (snap Snapshot, ok bool) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if !pb.simConnected || !pb.haveTelemetry {
		return Snapshot{}, false
	}
	return pb.telemetry, true
}

func (pb *Pitboard) Status() Status {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return Status{
		SimConnected: pb.simConnected,
		HaveSnapshot: pb.haveTelemetry,
		Snapshot:     pb.telemetry,
	}
}
