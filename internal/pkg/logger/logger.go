// Package logger adapts zap to the application's Logger port.
package logger

import (
	"go.uber.org/zap"
)

// ZapLogger is a structured logger backed by zap. Debug output is suppressed
// unless verbose mode is on; warnings and errors always print.
type ZapLogger struct {
	z       *zap.SugaredLogger
	verbose bool
}

// New creates a ZapLogger. In verbose mode it uses zap's development config
// so debug lines carry caller locations; otherwise the production config.
func New(verbose bool) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	// The CLI prints results on stdout; keep diagnostics off it.
	cfg.OutputPaths = []string{"stderr"}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{z: z.Sugar(), verbose: verbose}, nil
}

// NewNop returns a logger that discards everything. Useful in tests.
func NewNop() *ZapLogger {
	return &ZapLogger{z: zap.NewNop().Sugar()}
}

// Sync flushes buffered log entries.
func (l *ZapLogger) Sync() {
	_ = l.z.Sync()
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.z.Debugw(msg, flatten(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.z.Infow(msg, flatten(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.z.Warnw(msg, flatten(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	kv := flatten(fields)
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	l.z.Errorw(msg, kv...)
}

func flatten(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	kv := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return kv
}
