package logger

import (
	"path/filepath"

	"go.uber.org/zap/zapcore"
)

// ManagerConfig global manager configuration (shared by all modules)
type ManagerConfig struct {
	AppName       string `mapstructure:"app_name"`       // Application name (injected into all logs)
	Level         string `mapstructure:"level"`          // debug, info, warn, error
	Encoding      string `mapstructure:"encoding"`       // json or console
	EnableConsole bool   `mapstructure:"enable_console"` // Write to stdout
	EnableFile    bool   `mapstructure:"enable_file"`    // Write to per-module files
	BaseLogDir    string `mapstructure:"base_log_dir"`   // Log root directory (default logs/)
	EnableCaller  bool   `mapstructure:"enable_caller"`

	// File rotation configuration (lumberjack)
	MaxSize    int  `mapstructure:"max_size"`    // Maximum size of a single file (MB)
	MaxBackups int  `mapstructure:"max_backups"` // Number of old files to keep
	MaxAge     int  `mapstructure:"max_age"`     // Days to retain
	Compress   bool `mapstructure:"compress"`

	// Trace ID configuration
	EnableTraceID    bool   `mapstructure:"enable_trace_id"`
	TraceIDKey       string `mapstructure:"trace_id_key"`        // key in context (default "trace_id")
	TraceIDFieldName string `mapstructure:"trace_id_field_name"` // log field name (default "trace_id")
}

// ApplyDefaults fills zero-value fields with defaults
func (c *ManagerConfig) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Encoding == "" {
		c.Encoding = "json"
	}
	if c.BaseLogDir == "" {
		c.BaseLogDir = "logs"
	}
	if c.MaxSize <= 0 {
		c.MaxSize = 100
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = 10
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 30
	}
	if c.TraceIDKey == "" {
		c.TraceIDKey = "trace_id"
	}
	if c.TraceIDFieldName == "" {
		c.TraceIDFieldName = "trace_id"
	}
	if !c.EnableConsole && !c.EnableFile {
		c.EnableConsole = true
	}
}

// moduleFilePath returns the log file path for a module
func (c *ManagerConfig) moduleFilePath(module string) string {
	return filepath.Join(c.BaseLogDir, module+".log")
}

// ParseLevel converts a level string to a zapcore.Level (unknown defaults to info)
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
