package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide structured logger.
var Log *zap.Logger = zap.NewNop()

// Init builds the production logger at the given level. Unknown levels fall
// back to info.
func Init(logLevel string) {
	cfg := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	cfg.Level.SetLevel(level)
	Log, _ = cfg.Build()
}
