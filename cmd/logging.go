package cmd

import (
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// newLogger builds a development logger with --debug and a production
// logger otherwise
func newLogger(ctx *cli.Context) (*zap.Logger, error) {
	if ctx.GlobalBool("debug") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// syncLogger flushes buffered entries. Syncing stderr fails on some
// terminals, so the error is only reported at debug level.
func syncLogger(logger *zap.Logger) {
	if err := logger.Sync(); err != nil {
		logger.Debug("logger sync failed", zap.Error(err))
	}
}
