package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.Logger
	once   sync.Once
)

// Init builds the global logger. Production config when ENV=production,
// development config otherwise. Safe to call more than once.
func Init() {
	once.Do(func() {
		var (
			l   *zap.Logger
			err error
		)
		if os.Getenv("ENV") == "production" {
			l, err = zap.NewProduction()
		} else {
			l, err = zap.NewDevelopment()
		}
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		global = l
	})
}

// L returns the global logger, initializing it on first use.
func L() *zap.Logger {
	if global == nil {
		Init()
	}
	return global
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	_ = L().Sync()
}

func Info(msg string, fields ...zapcore.Field)  { L().Info(msg, fields...) }
func Warn(msg string, fields ...zapcore.Field)  { L().Warn(msg, fields...) }
func Error(msg string, fields ...zapcore.Field) { L().Error(msg, fields...) }
func Debug(msg string, fields ...zapcore.Field) { L().Debug(msg, fields...) }
