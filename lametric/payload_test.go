package lametric

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcrouch/pitboard"
)

func TestRatingsNotification(t *testing.T) {
	snap := pitboard.Snapshot{
		IRating:      3200,
		LicenseClass: "A",
		SafetyRating: 4.12,
	}

	n := RatingsNotification(snap)
	assert.Equal(t, "critical", n.Priority)
	assert.Equal(t, "none", n.IconType)
	assert.Equal(t, 0, n.Model.Cycles)
	assert.Equal(t, []Frame{
		{Icon: "i43085", Text: "3,200"},
		{Icon: "i43595", Text: "A 4.12"},
	}, n.Model.Frames)
}

func TestRatingsNotificationDeterministic(t *testing.T) {
	snap := pitboard.Snapshot{
		DisplayName:  "Test Driver",
		IRating:      5429,
		LicenseClass: "A",
		SafetyRating: 4.11,
	}
	assert.Equal(t, RatingsNotification(snap), RatingsNotification(snap))
}

func TestFlagNotification(t *testing.T) {
	n := FlagNotification("checkered")
	assert.NotNil(t, n)
	assert.Equal(t, 2, n.Model.Cycles)
	assert.Equal(t, []Frame{{Icon: "a43490", Text: "checkered"}}, n.Model.Frames)

	assert.Nil(t, FlagNotification("nosuchflag"))
}

func TestFlagsCoverTable(t *testing.T) {
	flags := Flags()
	assert.Len(t, flags, len(flagIcons))
	for _, name := range flags {
		assert.NotNil(t, FlagNotification(name), "flag %s has no icon", name)
	}
}

func TestFlagIcons(t *testing.T) {
	// pin the full table so dropped or misnumbered rows are caught
	expected := map[string]string{
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
	assert.Equal(t, expected, flagIcons)

	n := FlagNotification("random_waving")
	assert.NotNil(t, n)
	assert.Equal(t, "a43458", n.Model.Frames[0].Icon)
}

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "0", groupDigits(0))
	assert.Equal(t, "999", groupDigits(999))
	assert.Equal(t, "3,200", groupDigits(3200))
	assert.Equal(t, "12,345,678", groupDigits(12345678))
	assert.Equal(t, "-1,000", groupDigits(-1000))
}
