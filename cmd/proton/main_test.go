package main

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/proton/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestExplain(t *testing.T) {
	errors.DisableColors()
	defer errors.EnableColors()

	out, err := execute(t, "explain", "r001")
	require.NoError(t, err)
	assert.Contains(t, out, "R001: No active scope")
	assert.Contains(t, out, "https://proton.vango.dev/errors/R001")
}

func TestExplainList(t *testing.T) {
	out, err := execute(t, "explain", "--list")
	require.NoError(t, err)
	for _, code := range errors.GetAllCodes() {
		assert.Contains(t, out, code)
	}
}

func TestExplainUnknownCode(t *testing.T) {
	_, err := execute(t, "explain", "Z999")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.New("X001")))
}

func TestDemo(t *testing.T) {
	out, err := execute(t, "demo", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "effect saw count=20")
	assert.Contains(t, out, "all effects stopped")
}

func TestBench(t *testing.T) {
	out, err := execute(t, "bench",
		"--log-level", "error",
		"--signals", "2",
		"--memos", "2",
		"--effects", "4",
		"--updates", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Ran 10 updates")
	assert.Contains(t, out, "proton_reactive_effects_created_total")
	assert.Contains(t, out, `proton_reactive_triggers_total{op="set"}`)
}

func TestBenchRejectsInvalidWorkload(t *testing.T) {
	_, err := execute(t, "bench", "--log-level", "error", "--signals", "0", "--updates", "1")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.New("C002")))
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "demo", "--log-level", "loud")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.New("C002")))
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\nworkload:\n  signals: 1\n  memos: 0\n  effects: 1\n  updates: 5\n"), 0644))

	out, err := execute(t, "bench", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Ran 5 updates")
	assert.Contains(t, out, "1 signals, 0 memos, 1 effects")
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "init", "--yaml", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "proton.yaml")
	assert.FileExists(t, filepath.Join(dir, "proton.yaml"))

	_, err = execute(t, "init", "--dir", dir)
	require.Error(t, err)

	_, err = execute(t, "init", "--dir", dir, "--force")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "proton.json"))
}
