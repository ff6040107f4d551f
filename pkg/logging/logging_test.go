package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel(" error "))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestCLIModeWritesSubsystem(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Error("Router", errors.New("boom"), "load failed for %s", "DEV")

	out := buf.String()
	assert.Contains(t, out, "load failed for DEV")
	assert.Contains(t, out, "subsystem=Router")
	assert.Contains(t, out, "error=boom")
}

func TestTUIModeFiltersAndDelivers(t *testing.T) {
	ch := InitForTUI(LevelInfo)
	defer CloseTUIChannel()

	Debug("Cache", "dropped")
	Info("Cache", "kept %d", 1)

	select {
	case entry := <-ch:
		require.Equal(t, "kept 1", entry.Message)
		assert.Equal(t, "Cache", entry.Subsystem)
		assert.Contains(t, entry.String(), "[INFO] Cache: kept 1")
	default:
		t.Fatal("expected an entry on the TUI channel")
	}

	select {
	case entry := <-ch:
		t.Fatalf("unexpected entry %v", entry)
	default:
	}
}
