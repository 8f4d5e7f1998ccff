package logger

import (
	"os"

	"go.uber.org/zap"
)

var log = zap.NewNop()

// Init builds the process logger. Handlers are closures over the DB rather
// than structs, so the logger is package-level instead of injected.
func Init() error {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("GIN_MODE") == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	log = l
	return nil
}

func L() *zap.Logger { return log }

// Replace swaps the package logger, used by tests to capture output.
func Replace(l *zap.Logger) { log = l }

func Sync() { _ = log.Sync() }
