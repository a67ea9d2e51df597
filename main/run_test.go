package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	dir := t.TempDir()
	cfg := "log:\n  level: ERROR\n  path: \"\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sgdlr_config.yaml"), []byte(cfg), 0644))
	t.Setenv("SGDLR_CFG_PATH", dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	resetFlags()
	cmd := newMainCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	dir := setupEnv(t)
	output := filepath.Join(dir, "picture.png")

	out, err := execute(t, "run", "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, output)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestTrainCommand(t *testing.T) {
	setupEnv(t)
	out, err := execute(t, "train", "--epochs", "300")
	require.NoError(t, err)
	assert.Contains(t, out, "accuracy: 1.000")
}

func TestRunCommandBadConfig(t *testing.T) {
	setupEnv(t)
	_, err := execute(t, "run", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunCommandWritesOnlyImage(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SGDLR_CFG_PATH", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	_, err = execute(t, "run")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Equal(t, 1, len(entries))
	assert.Equal(t, "picture.png", entries[0].Name())
}
