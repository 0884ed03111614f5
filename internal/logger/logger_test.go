package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit_TextFormat(t *testing.T) {
	t.Cleanup(func() { Init("info", "text", "dev", os.Stderr) })
	var buf bytes.Buffer
	Init("debug", "text", "test", &buf)

	Log.WithField("user_id", 7).Debug("profile updated")

	out := buf.String()
	assert.Contains(t, out, "profile updated")
	assert.Contains(t, out, "user_id=7")
	assert.Contains(t, out, "service=vivaham")
	assert.Contains(t, out, "env=test")
}

func TestInit_JSONFormat(t *testing.T) {
	t.Cleanup(func() { Init("info", "text", "dev", os.Stderr) })
	var buf bytes.Buffer
	Init("info", "json", "prod", &buf)

	Log.WithField("interest_id", 3).Info("interest answered")

	out := buf.String()
	assert.Contains(t, out, `"msg":"interest answered"`)
	assert.Contains(t, out, `"interest_id":3`)
	assert.Contains(t, out, `"env":"prod"`)
}

func TestInit_LevelFilter(t *testing.T) {
	t.Cleanup(func() { Init("info", "text", "dev", os.Stderr) })
	var buf bytes.Buffer
	Init("error", "text", "test", &buf)

	Log.Info("should not appear")
	Log.Error("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
}

func TestInit_UnknownLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { Init("info", "text", "dev", os.Stderr) })
	var buf bytes.Buffer
	Init("chatty", "text", "test", &buf)

	Log.Debug("hidden")
	Log.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
