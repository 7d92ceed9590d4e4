// Package lametric talks to a LaMetric Time clock's local notification
// API and builds the notification payloads its companion app renders.
package lametric

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rcrouch/pitboard"
)

// LaMetric icon gallery ids for the ratings frames.
const (
	iconIRating = "i43085"
	iconLicense = "i43595"
)

type Frame struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

type NotificationModel struct {
	Cycles int     `json:"cycles"`
	Frames []Frame `json:"frames"`
}

type Notification struct {
	Priority string            `json:"priority,omitempty"`
	IconType string            `json:"icon_type,omitempty"`
	Model    NotificationModel `json:"model"`
}

// RatingsNotification builds the two-frame ratings notification shown
// on the clock: iRating first, then license class and safety rating.
// The mapping is deterministic.
func RatingsNotification(snap pitboard.Snapshot) *Notification {
	return &Notification{
		Priority: "critical",
		IconType: "none",
		Model: NotificationModel{
			Cycles: 0,
			Frames: []Frame{
				{Icon: iconIRating, Text: groupDigits(snap.IRating)},
				{Icon: iconLicense, Text: fmt.Sprintf("%s %.2f", snap.LicenseClass, snap.SafetyRating)},
			},
		},
	}
}

// Session flag icons from the LaMetric icon gallery.
var flagIcons = map[string]string{
	"start_hidden":   "a43445",
	"checkered":      "a43490",
	"white":          "a43444",
	"green":          "a43445",
	"yellow":         "a43439",
	"yellow_waving":  "a43439",
	"red":            "a43491",
	"blue":           "a43495",
	"debris":         "a43497",
	"green_held":     "i43445",
	"random_waving":  "a43458",
	"caution":        "i43439",
	"caution_waving": "a43439",
	"black":          "a43499",
	"disqualify":     "a43492",
	"furled":         "a43496",
	"repair":         "a43500",
}

// FlagNotification builds a short animated notification for a session
// flag. Unknown flag names return nil.
func FlagNotification(flag string) *Notification {
	icon, ok := flagIcons[flag]
	if !ok {
		return nil
	}
	return &Notification{
		Priority: "critical",
		IconType: "none",
		Model: NotificationModel{
			Cycles: 2,
			Frames: []Frame{
				{Icon: icon, Text: flag},
			},
		},
	}
}

// Flags lists the session flags that have a notification icon.
func Flags() []string {
	flags := make([]string, 0, len(flagIcons))
	for name := range flagIcons {
		flags = append(flags, name)
	}
	sort.Strings(flags)
	return flags
}

// groupDigits formats n with thousands separators, the way the clock
// face shows iRating.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
