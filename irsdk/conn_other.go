//go:build !windows

package irsdk

import "context"

// The simulator only runs on Windows. On other platforms the segment
// never exists, so Connect reports the sim as not running and the
// caller's retry loop idles.

type Conn struct{}

func Connect() (*Conn, error) {
	return nil, ErrSimNotRunning
}

func (c *Conn) Close() error {
	return nil
}

func (c *Conn) Start(ctx context.Context, cb Callbacks) error {
	return ErrSimNotRunning
}
