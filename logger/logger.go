package logger

import (
	"go.uber.org/zap"
)

// New builds the process-wide structured logger.
func New() *zap.Logger {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return log
}
