package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds a zap logger from the given core plugin.
func NewLogger(plugin zapcore.Core, options ...zap.Option) *zap.Logger {
	return zap.New(plugin, append(defaultOptions(), options...)...)
}

func defaultOptions() []zap.Option {
	return []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zap.DPanicLevel),
	}
}

// NewStdoutPlugin returns a core that writes to standard output.
func NewStdoutPlugin(enabler zapcore.LevelEnabler) zapcore.Core {
	return NewPlugin(zapcore.Lock(os.Stdout), enabler)
}

// NewStderrPlugin returns a core that writes to standard error.
func NewStderrPlugin(enabler zapcore.LevelEnabler) zapcore.Core {
	return NewPlugin(zapcore.Lock(os.Stderr), enabler)
}

// NewFilePlugin returns a core backed by a size-rotated log file and a
// closer for the underlying sink.
func NewFilePlugin(filePath string, enabler zapcore.LevelEnabler) (zapcore.Core, io.Closer) {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
	}
	return NewPlugin(zapcore.AddSync(writer), enabler), writer
}

// NewPlugin wraps a write syncer into a JSON-encoded core.
func NewPlugin(writer zapcore.WriteSyncer, enabler zapcore.LevelEnabler) zapcore.Core {
	return zapcore.NewCore(defaultEncoder(), writer, enabler)
}

func defaultEncoder() zapcore.Encoder {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(config)
}

// ParseLevel maps a config string onto a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}
