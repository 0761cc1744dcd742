// Package logger builds the service's zap loggers.
package logger

import (
	"go.uber.org/zap"
)

// NewNamed returns a named zap logger configured for the given application
// environment: human-readable development output for "development",
// JSON production output otherwise.
func NewNamed(appEnv, name string) (*zap.Logger, error) {
	var cfg zap.Config
	if appEnv == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
