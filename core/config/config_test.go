package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgdlr/common"
	"sgdlr/core/ml"
)

func newCmd(t *testing.T, args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("config", "c", "", "")
	cmd.Flags().StringP("output", "o", "picture.png", "")
	cmd.Flags().IntP("epochs", "e", ml.DefaultEpochs, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "sgdlr_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	t.Setenv("SGDLR_CFG_PATH", t.TempDir())
	lc, err := InitLocalConfig(newCmd(t))
	require.NoError(t, err)

	assert.Equal(t, ml.DefaultEpochs, lc.Train.Epochs)
	assert.Equal(t, ml.DefaultModel(), lc.InitModel())
	assert.Equal(t, "picture.png", lc.Plot.Output)
	assert.Equal(t, []float64{0, 12}, lc.PlotConfig().LineX)

	logConfig, err := lc.LogConfig()
	require.NoError(t, err)
	assert.Equal(t, common.LEVEL_DEBUG, logConfig.LogLevel)
}

func TestConfigFile(t *testing.T) {
	path := writeConfig(t, `
train:
  epochs: 10
  weight: [0.5, -1]
  bias: 2
plot:
  output: out.png
  title: boundary
  line_x: [1, 11]
log:
  level: warn
  path: ""
  module_levels:
    trainer: debug
`)
	lc, err := InitLocalConfig(newCmd(t, "--config", path))
	require.NoError(t, err)

	assert.Equal(t, 10, lc.Train.Epochs)
	assert.Equal(t, ml.Model{Weight: [2]float64{0.5, -1}, Bias: 2}, lc.InitModel())
	pc := lc.PlotConfig()
	assert.Equal(t, "out.png", pc.Output)
	assert.Equal(t, "boundary", pc.Title)
	assert.Equal(t, []float64{1, 11}, pc.LineX)
	assert.Equal(t, 4.0, pc.Width)

	logConfig, err := lc.LogConfig()
	require.NoError(t, err)
	assert.Equal(t, common.LEVEL_WARN, logConfig.LogLevel)
	assert.Equal(t, "", logConfig.LogPath)
	assert.Equal(t, common.LEVEL_DEBUG, logConfig.ModuleSpecialLevel[common.MODULE_TRAINER])
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "train:\n  epochs: 10\nplot:\n  output: out.png\n")
	lc, err := InitLocalConfig(newCmd(t, "-c", path, "-o", "flag.png", "-e", "20"))
	require.NoError(t, err)
	assert.Equal(t, 20, lc.Train.Epochs)
	assert.Equal(t, "flag.png", lc.Plot.Output)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SGDLR_CFG_PATH", t.TempDir())
	t.Setenv("SGDLR_PLOT_OUTPUT", "env.png")
	lc, err := InitLocalConfig(newCmd(t))
	require.NoError(t, err)
	assert.Equal(t, "env.png", lc.Plot.Output)
}

func TestInvalidConfig(t *testing.T) {
	_, err := InitLocalConfig(newCmd(t, "-c", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)

	path := writeConfig(t, "train:\n  weight: [1, 2, 3]\n")
	_, err = InitLocalConfig(newCmd(t, "-c", path))
	assert.Error(t, err)

	path = writeConfig(t, "train:\n  epochs: -1\n")
	_, err = InitLocalConfig(newCmd(t, "-c", path))
	assert.Error(t, err)

	path = writeConfig(t, "log:\n  level: loud\n")
	lc, err := InitLocalConfig(newCmd(t, "-c", path))
	require.NoError(t, err)
	_, err = lc.LogConfig()
	assert.Error(t, err)

	path = writeConfig(t, "log:\n  module_levels:\n    network: info\n")
	lc, err = InitLocalConfig(newCmd(t, "-c", path))
	require.NoError(t, err)
	_, err = lc.LogConfig()
	assert.Error(t, err)
}
