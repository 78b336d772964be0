package utils

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags, prevLevel := log.Writer(), log.Flags(), CurrentLevel
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		CurrentLevel = prevLevel
	})
	return &buf
}

func TestLevelThreshold(t *testing.T) {
	buf := captureLog(t)
	CurrentLevel = LevelWarn

	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "shown 3")
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "shown 4")
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]LogLevel{
		"debug": LevelDebug, "INFO": LevelInfo, "": LevelInfo,
		"warning": LevelWarn, " error ": LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestRaylibLogCallbackRouting(t *testing.T) {
	buf := captureLog(t)
	CurrentLevel = LevelInfo

	RaylibLogCallback(2, "trace noise")
	RaylibLogCallback(4, "texture too large")

	out := buf.String()
	assert.NotContains(t, out, "trace noise")
	assert.Contains(t, out, "[RAYLIB]")
	assert.Contains(t, out, "texture too large")
}

func TestRaylibInfoNeedsOptIn(t *testing.T) {
	buf := captureLog(t)
	CurrentLevel = LevelInfo
	prev := ShowRaylibInfo
	t.Cleanup(func() { ShowRaylibInfo = prev })

	ShowRaylibInfo = false
	RaylibLogCallback(3, "window opened")
	assert.Empty(t, buf.String())

	ShowRaylibInfo = true
	RaylibLogCallback(3, "window opened")
	assert.Contains(t, buf.String(), "[INFO]")
	assert.Contains(t, buf.String(), "window opened")

	RaylibLogCallback(6, "fatal")
	assert.Contains(t, buf.String(), "[ERROR]")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", LogLevel(9).String())
}
