package pitboard

import (
	"context"
	"fmt"
	"time"
)

var testModeTick = time.Second * 5

// runTestMode feeds synthetic driver data so the send path can be
// exercised without the simulator running.
func (pb *Pitboard) runTestMode(ctx context.Context) {
	go func() {
		select {
		case pb.connChan <- true:
		case <-ctx.Done():
			return
		}

		ticker := time.NewTicker(testModeTick)
		defer ticker.Stop()

		irating := 3200
		safety := 350 // hundredths
		bestLap := 85.0
		down := false
		for {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}

			update := driverUpdate{
				DisplayName: "Test Driver",
				IRating:     irating,
				LicString:   fmt.Sprintf("A %d.%02d", safety/100, safety%100),
				BestLapTime: bestLap,
			}
			select {
			case pb.driverChan <- update:
			case <-ctx.Done():
				return
			}

			if down {
				irating -= 25
				safety -= 3
			} else {
				irating += 25
				safety += 3
			}
			if bestLap > 80 {
				bestLap -= 0.25
			}

			if safety >= 499 {
				down = true
			} else if safety <= 100 {
				down = false
			}
		}
	}()
}
