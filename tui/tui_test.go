package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcrouch/pitboard"
	"github.com/rcrouch/pitboard/config"
)

func testModel(t *testing.T) Model {
	st := config.NewStore(filepath.Join(t.TempDir(), config.DefaultFileName))
	st.Set(config.Settings{DeviceIP: "192.168.1.50", APIKey: "abc123"})
	board := pitboard.New()
	loop := pitboard.NewLoop(board, st.Get)
	return NewModel(board, loop, st)
}

func TestNewModelPrefillsSettings(t *testing.T) {
	m := testModel(t)
	assert.Equal(t, "192.168.1.50", m.inputs[fieldIP].Value())
	assert.Equal(t, "abc123", m.inputs[fieldKey].Value())
}

func TestApplyTrimsFields(t *testing.T) {
	m := testModel(t)
	m.inputs[fieldIP].SetValue("  10.0.0.7 ")
	m.inputs[fieldKey].SetValue("newkey\t")
	m.apply()

	s := m.store.Get()
	assert.Equal(t, "10.0.0.7", s.DeviceIP)
	assert.Equal(t, "newkey", s.APIKey)
}

func TestFormatLapTime(t *testing.T) {
	assert.Equal(t, "-", formatLapTime(0))
	assert.Equal(t, "-", formatLapTime(-1))
	assert.Equal(t, "1:23.457", formatLapTime(83.4567))
	assert.Equal(t, "0:59.900", formatLapTime(59.9))
	assert.Equal(t, "2:00.000", formatLapTime(120))
}

func TestViewShowsDisconnectedState(t *testing.T) {
	m := testModel(t)
	view := m.View()
	assert.True(t, strings.Contains(view, "waiting for iRacing"))
	assert.True(t, strings.Contains(view, "no driver data yet"))
}
