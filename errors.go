package pitboard

import "github.com/pkg/errors"

// ErrSimUnavailable is reported when a send is attempted before the
// simulator has delivered any driver data.
var ErrSimUnavailable = errors.New("simulator is not running")
