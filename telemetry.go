package pitboard

import (
	"strconv"
	"strings"
)

// driverUpdate is the raw driver record as delivered by the simulator's
// session info. Values are unconverted.
type driverUpdate struct {
	DisplayName string
	IRating     int
	LicString   string
	BestLapTime float64
}

// Snapshot is the normalized driver telemetry forwarded to devices.
type Snapshot struct {
	DisplayName  string
	IRating      int
	LicenseClass string
	SafetyRating float64
	// best lap of the session in seconds; zero or negative when no
	// lap has been completed
	BestLapTime float64
}

// parseLicense splits the simulator's combined license string
// (e.g. "A 4.12") into the class letter and numeric safety rating.
func parseLicense(s string) (class string, safety float64) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", 0
	}
	class = fields[0]
	if len(fields) > 1 {
		if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
			safety = v
		}
	}
	return class, safety
}
