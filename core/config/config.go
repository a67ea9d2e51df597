package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sgdlr/common"
	"sgdlr/core/ml"
	"sgdlr/core/plot"
)

type TrainConfig struct {
	Epochs int       `mapstructure:"epochs"`
	Weight []float64 `mapstructure:"weight"`
	Bias   float64   `mapstructure:"bias"`
}

type PlotConfig struct {
	Output string    `mapstructure:"output"`
	Title  string    `mapstructure:"title"`
	Width  float64   `mapstructure:"width"`
	Height float64   `mapstructure:"height"`
	LineX  []float64 `mapstructure:"line_x"`
}

type LogConf struct {
	Mode         string            `mapstructure:"mode"`
	Path         string            `mapstructure:"path"`
	Level        string            `mapstructure:"level"`
	ModuleLevels map[string]string `mapstructure:"module_levels"`
	MaxAge       int               `mapstructure:"max_age"`
	RotationTime int               `mapstructure:"rotation_time"`
	RotationSize int               `mapstructure:"rotation_size"`
	ShowLine     bool              `mapstructure:"show_line"`
	LogInConsole bool              `mapstructure:"log_in_console"`
}

type LocalConfig struct {
	Train TrainConfig `mapstructure:"train"`
	Plot  PlotConfig  `mapstructure:"plot"`
	Log   LogConf     `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	pc := plot.DefaultConfig()
	lc := common.DefaultLogConfig(true)

	v.SetDefault("train.epochs", ml.DefaultEpochs)
	v.SetDefault("train.weight", []float64{1, 0})
	v.SetDefault("train.bias", 0.0)
	v.SetDefault("plot.output", pc.Output)
	v.SetDefault("plot.title", pc.Title)
	v.SetDefault("plot.width", pc.Width)
	v.SetDefault("plot.height", pc.Height)
	v.SetDefault("plot.line_x", pc.LineX)
	v.SetDefault("log.path", lc.LogPath)
	v.SetDefault("log.level", common.LOG_LEVEL_Name[lc.LogLevel])
	v.SetDefault("log.max_age", lc.RotationMaxAge)
	v.SetDefault("log.rotation_time", lc.RotationTime)
	v.SetDefault("log.rotation_size", lc.RotationSize)
	v.SetDefault("log.show_line", lc.ShowLine)
	v.SetDefault("log.log_in_console", lc.LogInConsole)
}

// InitLocalConfig loads sgdlr_config.yaml from --config, or from
// $SGDLR_CFG_PATH (default "."). A missing file leaves the defaults, which
// reproduce the stock run: 300 epochs from w=(1,0), b=0 into picture.png.
// Flags named output and epochs override the file when set.
func InitLocalConfig(cmd *cobra.Command) (*LocalConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("sgdlr")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	altPath := os.Getenv("SGDLR_CFG_PATH")
	if altPath == "" {
		altPath = "."
	}
	v.AddConfigPath(altPath)
	v.SetConfigName("sgdlr_config")
	v.SetConfigType("yaml")

	cmdSetConfigFile := ""
	if flag := cmd.Flags().Lookup("config"); flag != nil {
		cmdSetConfigFile = flag.Value.String()
	}
	if cmdSetConfigFile != "" {
		v.SetConfigFile(cmdSetConfigFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cmdSetConfigFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	for key, name := range map[string]string{"plot.output": "output", "train.epochs": "epochs"} {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, errors.Wrapf(err, "bind flag %s", name)
			}
		}
	}

	lc := &LocalConfig{}
	if err := v.Unmarshal(lc); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return lc, lc.validate()
}

func (c *LocalConfig) validate() error {
	if len(c.Train.Weight) != 2 {
		return errors.Errorf("train.weight needs 2 values, got %d", len(c.Train.Weight))
	}
	if c.Train.Epochs < 0 {
		return errors.Errorf("train.epochs must not be negative, got %d", c.Train.Epochs)
	}
	if c.Plot.Output == "" {
		return errors.New("plot.output is empty")
	}
	return nil
}

func (c *LocalConfig) InitModel() ml.Model {
	return ml.Model{
		Weight: [2]float64{c.Train.Weight[0], c.Train.Weight[1]},
		Bias:   c.Train.Bias,
	}
}

func (c *LocalConfig) PlotConfig() *plot.Config {
	return &plot.Config{
		Output: c.Plot.Output,
		Title:  c.Plot.Title,
		Width:  c.Plot.Width,
		Height: c.Plot.Height,
		LineX:  append([]float64(nil), c.Plot.LineX...),
	}
}

func parseLevel(s string) (common.LOG_LEVEL, error) {
	level, ok := common.LOG_LEVEL_Value[strings.ToUpper(s)]
	if !ok {
		return common.LEVEL_INFO, errors.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// moduleName maps a config key such as "trainer" (viper lower-cases keys)
// onto the logger name "[Trainer]".
func moduleName(key string) (string, bool) {
	for _, m := range common.Modules {
		if strings.EqualFold(key, m) || strings.EqualFold("["+key+"]", m) {
			return m, true
		}
	}
	return "", false
}

func (c *LocalConfig) LogConfig() (*common.LogConfig, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	lc := &common.LogConfig{
		BriefMode:      strings.ToUpper(c.Log.Mode),
		LogPath:        c.Log.Path,
		LogLevel:       level,
		RotationMaxAge: c.Log.MaxAge,
		RotationTime:   c.Log.RotationTime,
		RotationSize:   c.Log.RotationSize,
		ShowLine:       c.Log.ShowLine,
		LogInConsole:   c.Log.LogInConsole,
	}
	if len(c.Log.ModuleLevels) > 0 {
		lc.ModuleSpecialLevel = make(map[string]common.LOG_LEVEL, len(c.Log.ModuleLevels))
		for key, s := range c.Log.ModuleLevels {
			module, ok := moduleName(key)
			if !ok {
				return nil, errors.Errorf("unknown log module %q", key)
			}
			if lc.ModuleSpecialLevel[module], err = parseLevel(s); err != nil {
				return nil, err
			}
		}
	}
	return lc, nil
}
