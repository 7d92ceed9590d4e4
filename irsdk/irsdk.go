// Package irsdk reads live session data from the iRacing simulator's
// shared-memory telemetry segment. The segment only exists while the
// simulator runs; its absence is a normal condition reported as
// ErrSimNotRunning, never a crash.
package irsdk

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ErrSimNotRunning is returned when the simulator's shared-memory
// segment does not exist or is not marked connected.
var ErrSimNotRunning = errors.New("iRacing is not running")

// Driver is the session info record for the seat the player occupies.
type Driver struct {
	UserName    string  `yaml:"UserName"`
	TeamName    string  `yaml:"TeamName"`
	CarNumber   string  `yaml:"CarNumber"`
	IRating     int     `yaml:"IRating"`
	LicLevel    int     `yaml:"LicLevel"`
	LicString   string  `yaml:"LicString"`
	BestLapTime float64 `yaml:"LapBestLapTime"`
}

// Callbacks receive session updates while Start runs.
type Callbacks struct {
	Driver func(Driver)
}

type sessionInfo struct {
	DriverInfo struct {
		DriverCarIdx int `yaml:"DriverCarIdx"`
		Drivers      []struct {
			CarIdx int `yaml:"CarIdx"`
			Driver `yaml:",inline"`
		} `yaml:"Drivers"`
	} `yaml:"DriverInfo"`
}

// parseSessionInfo extracts the player's driver record from the
// simulator's session info YAML document.
func parseSessionInfo(doc []byte) (Driver, error) {
	// the block is null padded to its buffer size
	if i := bytes.IndexByte(doc, 0); i >= 0 {
		doc = doc[:i]
	}
	var info sessionInfo
	if err := yaml.Unmarshal(doc, &info); err != nil {
		return Driver{}, errors.Wrap(err, "unable to parse session info")
	}
	for _, d := range info.DriverInfo.Drivers {
		if d.CarIdx == info.DriverInfo.DriverCarIdx {
			return d.Driver, nil
		}
	}
	return Driver{}, errors.New("player driver record not found in session info")
}
