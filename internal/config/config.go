package config

import (
	"go.uber.org/zap"
)

// Logger is the process-wide logger. It stays a no-op until InitLogger runs.
var Logger = zap.NewNop()

// InitLogger builds the zap logger for the given environment.
func InitLogger(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}

	Logger = l
	Logger.Info("zap logger initialized", zap.String("env", env))
	return nil
}
