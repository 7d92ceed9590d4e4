//go:build windows

package irsdk

import (
	"context"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

const (
	memMapFileName = "Local\\IRSDKMemMapFileName"

	statusConnected = 1

	pollInterval = time.Second
)

// header mirrors irsdk_header at the start of the segment.
type header struct {
	Ver               int32
	Status            int32
	TickRate          int32
	SessionInfoUpdate int32
	SessionInfoLen    int32
	SessionInfoOffset int32
	NumVars           int32
	VarHeaderOffset   int32
	NumBuf            int32
	BufLen            int32
}

// Conn is a read-only view of the simulator's shared-memory segment.
type Conn struct {
	handle windows.Handle
	view   []byte
}

// Connect opens the simulator's shared-memory segment. It fails with
// ErrSimNotRunning when the simulator has not created the segment or
// has not yet marked it connected.
func Connect() (*Conn, error) {
	name, err := windows.UTF16PtrFromString(memMapFileName)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode mapping name")
	}
	handle, err := windows.OpenFileMapping(windows.FILE_MAP_READ, false, name)
	if err != nil {
		return nil, ErrSimNotRunning
	}
	addr, err := windows.MapViewOfFile(handle, windows.FILE_MAP_READ, 0, 0, 0)
	if err != nil {
		windows.CloseHandle(handle)
		return nil, errors.Wrap(err, "unable to map telemetry segment")
	}
	var mbi windows.MemoryBasicInformation
	if err := windows.VirtualQuery(addr, &mbi, unsafe.Sizeof(mbi)); err != nil {
		windows.UnmapViewOfFile(addr)
		windows.CloseHandle(handle)
		return nil, errors.Wrap(err, "unable to size telemetry segment")
	}

	c := &Conn{
		handle: handle,
		view:   unsafe.Slice((*byte)(unsafe.Pointer(addr)), mbi.RegionSize),
	}
	if c.header().Status&statusConnected == 0 {
		c.Close()
		return nil, ErrSimNotRunning
	}
	return c, nil
}

func (c *Conn) header() header {
	return *(*header)(unsafe.Pointer(&c.view[0]))
}

// Close unmaps the segment.
func (c *Conn) Close() error {
	if c.view == nil {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&c.view[0]))
	c.view = nil
	err := windows.UnmapViewOfFile(addr)
	if cerr := windows.CloseHandle(c.handle); err == nil {
		err = cerr
	}
	return err
}

// Start polls the session info block and fires callbacks when its
// update counter advances. It returns when the simulator disconnects
// or ctx is cancelled.
func (c *Conn) Start(ctx context.Context, cb Callbacks) error {
	lastUpdate := int32(-1)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		h := c.header()
		if h.Status&statusConnected == 0 {
			return ErrSimNotRunning
		}
		if h.SessionInfoUpdate == lastUpdate {
			continue
		}
		start := int(h.SessionInfoOffset)
		end := start + int(h.SessionInfoLen)
		if start <= 0 || end > len(c.view) || start >= end {
			return errors.Errorf("session info block out of range: %d..%d", start, end)
		}
		doc := make([]byte, end-start)
		copy(doc, c.view[start:end])

		driver, err := parseSessionInfo(doc)
		if err != nil {
			// likely a mid-write tear; retry on the next tick
			log.WithField("err", err).Debug("skipping unreadable session info")
			continue
		}
		lastUpdate = h.SessionInfoUpdate
		if cb.Driver != nil {
			cb.Driver(driver)
		}
	}
}
