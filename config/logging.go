package config

import "go.uber.org/zap/zapcore"

// LogEncoder defines a log encoder kind.
type LogEncoder = string

const (
	defaultLoggingLevel = zapcore.InfoLevel
	// ConsoleLogEncoder represents logging with plain text.
	ConsoleLogEncoder LogEncoder = "console"
	// JSONLogEncoder represents logging with JSON.
	JSONLogEncoder LogEncoder = "json"
)

// LoggerConfig holds the logging level for each component.
type LoggerConfig struct {
	Encoder           LogEncoder `mapstructure:"log-encoder"`
	AppLoggerLevel    string     `mapstructure:"app"`
	BenchLoggerLevel  string     `mapstructure:"bench"`
	PeelLoggerLevel   string     `mapstructure:"peel"`
	TxFileLoggerLevel string     `mapstructure:"txfile"`
}

func defaultLoggingConfig() LoggerConfig {
	return LoggerConfig{
		Encoder:           ConsoleLogEncoder,
		AppLoggerLevel:    defaultLoggingLevel.String(),
		BenchLoggerLevel:  defaultLoggingLevel.String(),
		PeelLoggerLevel:   zapcore.WarnLevel.String(),
		TxFileLoggerLevel: zapcore.WarnLevel.String(),
	}
}
