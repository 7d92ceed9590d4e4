// lamtest exercises a LaMetric device without the simulator: it sends a
// ratings notification followed by random session-flag notifications,
// dismissing the previous one between sends.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rcrouch/pitboard"
	"github.com/rcrouch/pitboard/lametric"
)

var (
	deviceIP  = flag.String("ip", "", "LaMetric device IP address")
	apiKey    = flag.String("key", "", "LaMetric device API key")
	flagCount = flag.Int("flags", 3, "number of random flag notifications to send")
)

func main() {
	flag.Parse()
	if *deviceIP == "" || *apiKey == "" {
		flag.Usage()
		os.Exit(1)
	}

	ctx := context.Background()
	client := lametric.NewClient()

	queued, err := client.Queued(ctx, *deviceIP, *apiKey)
	if err != nil {
		log.Fatal("unable to list queued notifications: ", err)
	}
	fmt.Printf("%d notification(s) queued on device\n", len(queued))

	snap := pitboard.Snapshot{
		IRating:      5429,
		LicenseClass: "A",
		SafetyRating: 4.11,
	}
	lastID, err := client.Send(ctx, *deviceIP, *apiKey, lametric.RatingsNotification(snap))
	if err != nil {
		log.Fatal("unable to send ratings notification: ", err)
	}
	fmt.Println("sent ratings notification")

	flags := lametric.Flags()
	for i := 0; i < *flagCount; i++ {
		time.Sleep(3 * time.Second)
		if lastID != "" {
			if err := client.Dismiss(ctx, *deviceIP, *apiKey, lastID); err != nil {
				log.Warn("unable to dismiss previous notification: ", err)
			}
		}
		name := flags[rand.Intn(len(flags))]
		lastID, err = client.Send(ctx, *deviceIP, *apiKey, lametric.FlagNotification(name))
		if err != nil {
			log.Fatal("unable to send flag notification: ", err)
		}
		fmt.Println("sent flag:", name)
	}
}
