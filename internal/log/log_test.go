package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_DisabledWithoutInit(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Debug(CatMotion, "dropped", "k", "v")
	})
}

func TestLog_FormatsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	Info(CatMotion, "matched", "motion", "word.forward", "keys", "w")

	out := buf.String()
	require.Contains(t, out, "[INFO] [motion] matched")
	require.Contains(t, out, "motion=word.forward")
	require.Contains(t, out, "keys=w")
}

func TestLog_OrphanKey(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	Warn(CatScan, "odd", "lonely")
	require.Contains(t, buf.String(), "lonely=<missing>")
}

func TestLog_MinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetMinLevel(LevelWarn)
	Debug(CatMotion, "hidden")
	Error(CatMotion, "shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "[ERROR] [motion] shown")
}

func TestLog_SetEnabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetEnabled(false)
	Info(CatCLI, "hidden")
	SetEnabled(true)
	Info(CatCLI, "shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestLog_ErrorErr(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	ErrorErr(CatConfig, "failed", os.ErrNotExist, "path", "x.yaml")
	require.Contains(t, buf.String(), "error=file does not exist")

	ErrorErr(CatConfig, "failed", nil)
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(Reset)

	Debug(CatTrace, "hello")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[DEBUG] [trace] hello")
}

func TestInit_BadPath(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("warn")
	require.NoError(t, err)
	require.Equal(t, LevelWarn, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}
