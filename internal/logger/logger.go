package logger

import (
	"go-shop/internal/config"
	"go-shop/internal/database"

	"go.uber.org/zap"
)

// NewLogger builds the application logger. Besides the console output,
// every entry is mirrored asynchronously into the Mongo "logs"
// collection by the DB core.
func NewLogger(cfg *config.Config, mongodb *database.Mongo) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Enable Caller to get the function name into DB records
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	dbWriter := NewDBLogWriter(mongodb, cfg)
	finalCore := NewDBCore(baseLogger.Core(), dbWriter)

	return zap.New(finalCore, zap.AddCaller()), nil
}
