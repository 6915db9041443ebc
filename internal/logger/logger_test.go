package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	log.Debug("hidden")
	log.Info("visible", "rows", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "rows=3")
}

func TestNew_LevelVar(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	log := New(&buf, level)

	log.Debug("hidden before raising verbosity")
	level.Set(slog.LevelDebug)
	log.Debug("shown in verbose mode")

	out := buf.String()
	assert.NotContains(t, out, "hidden before raising verbosity")
	assert.Contains(t, out, "shown in verbose mode")
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.NotPanics(t, func() {
		log.Info("dropped")
		log.Error("dropped too")
	})
}
