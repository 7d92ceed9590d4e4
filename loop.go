package pitboard

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rcrouch/pitboard/config"
)

// ResultKind classifies the outcome of a send cycle.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultOK
	ResultConfigMissing
	ResultSimUnavailable
	ResultSendFailed
)

// Result records the outcome of the most recent send cycle.
type Result struct {
	Kind ResultKind
	Err  error
	At   time.Time
}

type loopCmd int

const (
	cmdStart loopCmd = iota
	cmdStop
	cmdSendTest
)

// Loop drives periodic read-format-send cycles against the registered
// forwarders. It has two states: idle (no timer) and polling (timer at
// the configured interval). A send-test cycle runs in either state.
type Loop struct {
	board    *Pitboard
	settings func() config.Settings

	forwarders []Forwarder
	cmdChan    chan loopCmd

	// prevSent is only touched from Run
	prevSent *Snapshot

	mu      sync.Mutex
	polling bool
	last    Result
}

func NewLoop(board *Pitboard, settings func() config.Settings) *Loop {
	return &Loop{
		board:    board,
		settings: settings,
		cmdChan:  make(chan loopCmd, 4),
	}
}

func (l *Loop) AddForwarder(f Forwarder) {
	l.forwarders = append(l.forwarders, f)
}

// StartPolling requests the idle-to-polling transition. The first cycle
// runs immediately.
func (l *Loop) StartPolling() {
	l.cmdChan <- cmdStart
}

// StopPolling requests the polling-to-idle transition.
func (l *Loop) StopPolling() {
	l.cmdChan <- cmdStop
}

// SendTest requests a single cycle regardless of state. The send is
// unconditional even when the snapshot has not changed.
func (l *Loop) SendTest() {
	l.cmdChan <- cmdSendTest
}

func (l *Loop) Polling() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.polling
}

func (l *Loop) LastResult() Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

// Run owns the poll timer. It processes state transitions and ticks
// serially until ctx is cancelled; no error stops the loop.
func (l *Loop) Run(ctx context.Context) {
	var ticker *time.Ticker
	var tick <-chan time.Time

	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tick = nil
		}
	}
	defer stopTicker()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-l.cmdChan:
			switch cmd {
			case cmdStart:
				if ticker != nil {
					continue
				}
				ticker = time.NewTicker(l.settings().Interval())
				tick = ticker.C
				l.setPolling(true)
				l.record(l.cycle(ctx, false))
			case cmdStop:
				stopTicker()
				l.setPolling(false)
			case cmdSendTest:
				l.record(l.cycle(ctx, true))
			}
		case <-tick:
			l.record(l.cycle(ctx, false))
		}
	}
}

// cycle performs one read-format-send pass. force drops change gating
// so the device receives a notification even for a repeat snapshot.
func (l *Loop) cycle(ctx context.Context, force bool) Result {
	now := time.Now()
	if err := l.settings().Validate(); err != nil {
		return Result{Kind: ResultConfigMissing, Err: err, At: now}
	}
	snap, ok := l.board.Snapshot()
	if !ok {
		return Result{Kind: ResultSimUnavailable, Err: ErrSimUnavailable, At: now}
	}
	prev := l.prevSent
	if force {
		prev = nil
	}
	for _, f := range l.forwarders {
		if err := f.Forward(ctx, prev, &snap); err != nil {
			return Result{Kind: ResultSendFailed, Err: err, At: now}
		}
	}
	l.prevSent = &snap
	return Result{Kind: ResultOK, At: now}
}

func (l *Loop) setPolling(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.polling = on
}

func (l *Loop) record(r Result) {
	l.mu.Lock()
	l.last = r
	l.mu.Unlock()
	if r.Err != nil {
		log.WithField("err", r.Err).Debug("send cycle failed")
	}
}
