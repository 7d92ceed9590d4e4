package main

import (
	"context"
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/rcrouch/pitboard"
	"github.com/rcrouch/pitboard/config"
	"github.com/rcrouch/pitboard/lametric"
	"github.com/rcrouch/pitboard/tui"
)

var (
	deviceIP = flag.String("ip", "", "LaMetric device IP address (overrides saved settings)")
	apiKey   = flag.String("key", "", "LaMetric device API key (overrides saved settings)")
	testMode = flag.Bool("testmode", false, "generate test data instead of reading the simulator")
	logFile  = flag.String("log", "pitboard.log", "file to write logs to")
	debug    = flag.Bool("debug", false, "log at debug level")
)

func main() {
	flag.Parse()

	log.SetLevel(log.InfoLevel)
	if *debug {
		log.SetLevel(log.DebugLevel)
	}
	// the TUI owns the terminal, so logs go to a file
	if f, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
		defer f.Close()
		log.SetOutput(f)
	}

	path, err := config.DefaultPath()
	if err != nil {
		log.Fatal("unable to resolve settings path: ", err)
	}
	store := config.NewStore(path)
	if err := store.Load(); err != nil {
		log.Fatal("unable to load settings: ", err)
	}
	if *deviceIP != "" || *apiKey != "" {
		s := store.Get()
		if *deviceIP != "" {
			s.DeviceIP = *deviceIP
		}
		if *apiKey != "" {
			s.APIKey = *apiKey
		}
		store.Set(s)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	board := pitboard.New()
	board.SetTestMode(*testMode)
	board.Start(ctx)

	loop := pitboard.NewLoop(board, store.Get)
	loop.AddForwarder(lametric.NewForwarder(lametric.NewClient(), store))
	go loop.Run(ctx)
	loop.StartPolling()

	if _, err := tea.NewProgram(tui.NewModel(board, loop, store)).Run(); err != nil {
		log.Fatal("unable to run UI: ", err)
	}
}
