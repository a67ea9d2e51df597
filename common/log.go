package common

import (
	"log"
	"os"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LOG_LEVEL is the level used in LogConfig; it is mapped onto zap levels.
type LOG_LEVEL int

const (
	LEVEL_DEBUG LOG_LEVEL = iota
	LEVEL_INFO
	LEVEL_WARN
	LEVEL_ERROR
)

var (
	LOG_LEVEL_Name = map[LOG_LEVEL]string{
		LEVEL_DEBUG: "DEBUG",
		LEVEL_INFO:  "INFO",
		LEVEL_WARN:  "WARN",
		LEVEL_ERROR: "ERROR",
	}
	LOG_LEVEL_Value = map[string]LOG_LEVEL{
		"DEBUG": LEVEL_DEBUG,
		"INFO":  LEVEL_INFO,
		"WARN":  LEVEL_WARN,
		"ERROR": LEVEL_ERROR,
	}
)

const (
	LOG_MODE_DEV  = "DEV"
	LOG_MODE_PROD = "PROD"
)

const (
	MODULE_NODE    = "[Node]"
	MODULE_DATASET = "[Dataset]"
	MODULE_TRAINER = "[Trainer]"
	MODULE_PLOTTER = "[Plotter]"
)

var Modules = []string{MODULE_NODE, MODULE_DATASET, MODULE_TRAINER, MODULE_PLOTTER}

type LogConfig struct {
	BriefMode          string
	ModuleSpecialLevel map[string]LOG_LEVEL // per-module level override

	LogPath        string // empty: console only
	LogLevel       LOG_LEVEL
	RotationMaxAge int // days
	RotationTime   int // hours
	RotationSize   int // MB
	ShowLine       bool
	LogInConsole   bool
}

// DefaultLogConfig returns the DEV or PROD preset. DEV logs to the console
// only; PROD also keeps a rotating file.
func DefaultLogConfig(isDEV bool) *LogConfig {
	if isDEV {
		return &LogConfig{
			LogPath:        "",
			LogLevel:       LEVEL_DEBUG,
			RotationMaxAge: 1,
			RotationTime:   1,
			RotationSize:   10,
			ShowLine:       true,
			LogInConsole:   true,
		}
	}
	return &LogConfig{
		LogPath:        "./sgdlr.prod.log",
		LogLevel:       LEVEL_INFO,
		RotationMaxAge: 7,
		RotationTime:   24,
		RotationSize:   30,
		ShowLine:       false,
		LogInConsole:   true,
	}
}

func adjustLogConfig(name string, lc *LogConfig) *LogConfig {
	if lc.BriefMode != "" {
		return DefaultLogConfig(lc.BriefMode != LOG_MODE_PROD)
	}

	newC := *lc
	newC.ModuleSpecialLevel = nil
	if level, ok := lc.ModuleSpecialLevel[name]; ok {
		newC.LogLevel = level
	}
	return &newC
}

func zapLevelOf(level LOG_LEVEL) zapcore.Level {
	switch level {
	case LEVEL_DEBUG:
		return zap.DebugLevel
	case LEVEL_WARN:
		return zap.WarnLevel
	case LEVEL_ERROR:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func newSyncer(lc *LogConfig) zapcore.WriteSyncer {
	var syncers []zapcore.WriteSyncer
	if lc.LogInConsole || lc.LogPath == "" {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}
	if lc.LogPath != "" {
		rotationWriter, err := rotatelogs.New(
			lc.LogPath+".%Y%m%d%H",
			rotatelogs.WithRotationTime(time.Duration(lc.RotationTime)*time.Hour),
			rotatelogs.WithRotationSize(int64(lc.RotationSize)*1024*1024),
			rotatelogs.WithMaxAge(time.Hour*24*time.Duration(lc.RotationMaxAge)),
		)
		if err != nil {
			log.Fatalf("new rotation log failed, %s", err)
		}
		syncers = append(syncers, zapcore.AddSync(rotationWriter))
	}
	return zapcore.NewMultiWriteSyncer(syncers...)
}

func newEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:       "time",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "line",
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + level.CapitalString() + "]")
		},
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
		},
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	})
}

func NewSugaredLogger(name string, lc *LogConfig) *zap.SugaredLogger {
	lcc := adjustLogConfig(name, lc)
	zapLevel := zapLevelOf(lcc.LogLevel)
	priority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapLevel
	})

	core := zapcore.NewCore(newEncoder(), newSyncer(lcc), priority)

	// the sugared logger is wrapped by LRLogger, skip that frame
	opts := []zap.Option{zap.AddCallerSkip(1)}
	if lcc.ShowLine {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...).Named(name).Sugar()
}

type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

type LRLogger struct {
	zlog  *zap.SugaredLogger
	name  string
	mutex sync.RWMutex
}

func (l *LRLogger) Logger() *zap.SugaredLogger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.zlog
}

func (l *LRLogger) Debug(args ...interface{}) {
	l.Logger().Debug(args...)
}

func (l *LRLogger) Debugf(format string, args ...interface{}) {
	l.Logger().Debugf(format, args...)
}

func (l *LRLogger) Info(args ...interface{}) {
	l.Logger().Info(args...)
}

func (l *LRLogger) Infof(format string, args ...interface{}) {
	l.Logger().Infof(format, args...)
}

func (l *LRLogger) Warn(args ...interface{}) {
	l.Logger().Warn(args...)
}

func (l *LRLogger) Warnf(format string, args ...interface{}) {
	l.Logger().Warnf(format, args...)
}

func (l *LRLogger) Error(args ...interface{}) {
	l.Logger().Error(args...)
}

func (l *LRLogger) Errorf(format string, args ...interface{}) {
	l.Logger().Errorf(format, args...)
}

func (l *LRLogger) Sync() error {
	return l.Logger().Sync()
}

func (l *LRLogger) SetLogger(logger *zap.SugaredLogger) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.zlog = logger
}

var (
	loggers     = make(map[string]*LRLogger)
	loggerMutex sync.Mutex
	logConfig   *LogConfig
)

// GetLogger returns the shared logger for a module, creating it on first use.
func GetLogger(name string) *LRLogger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	if logger, ok := loggers[name]; ok {
		return logger
	}
	if logConfig == nil {
		logConfig = DefaultLogConfig(true)
	}

	logger := &LRLogger{
		name: name,
		zlog: NewSugaredLogger(name, logConfig),
	}
	loggers[name] = logger
	return logger
}

// SyncLoggers flushes every logger. Console syncers may report an error on
// some platforms, so the first error is returned but all loggers are synced.
func SyncLoggers() error {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	var first error
	for _, logger := range loggers {
		if err := logger.Sync(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// SetLogConfig should be called before the first GetLogger; loggers created
// earlier are rebuilt with the new config.
func SetLogConfig(config *LogConfig) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	logConfig = config
	for _, logger := range loggers {
		logger.SetLogger(NewSugaredLogger(logger.name, logConfig))
	}
}
