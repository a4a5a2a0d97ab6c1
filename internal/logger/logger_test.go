package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromZap_ModuleAndDetails(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core))

	l.Warn("journey", "corrupt stored value", map[string]interface{}{
		"project": "p1",
		"error":   errors.New("bad json"),
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "journey", ctx["module"])
	assert.Equal(t, "bad json", ctx["error"])
	assert.Equal(t, map[string]interface{}{"project": "p1"}, ctx["details"])
}

func TestFromZap_NilDetails(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core))

	l.Info("chat", "session created", nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	_, hasDetails := entries[0].ContextMap()["details"]
	assert.False(t, hasDetails)
}

func TestNew_WritesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, err := New(dir, false)
	require.NoError(t, err)

	l.Info("test", "hello", nil)
	_ = l.Sync()

	_, err = os.Stat(filepath.Join(dir, "salesfirst.log"))
	assert.NoError(t, err)
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Error("x", "ignored", map[string]interface{}{"error": errors.New("e")})
	assert.NoError(t, l.Sync())
}
