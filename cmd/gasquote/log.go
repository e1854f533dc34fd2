package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// openLog sends messages at level and above to stderr. If logDir is set,
// debug messages are also written as JSON to a timestamped file under
// logDir/logs, with a "latest" symlink pointing at it.
func openLog(stderr io.Writer, level, logDir string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, usageErr.New("invalid log level %q", level)
	}

	// Send the chosen level and above to stderr
	stderrEncoder := zap.NewDevelopmentEncoderConfig()
	stderrEncoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
	stderrCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(stderrEncoder),
		zapcore.Lock(zapcore.AddSync(stderr)),
		lvl)
	if logDir == "" {
		return zap.New(stderrCore), nil
	}

	logsDir := filepath.Join(logDir, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, errs.Wrap(err)
	}

	// Name the log based on the current timestamp to millisecond precision
	logName := time.Now().UTC().Format("2006.01.02.15.04.05.000Z") + ".json"

	logsPath, err := filepath.Abs(filepath.Join(logsDir, logName))
	if err != nil {
		return nil, errs.Wrap(err)
	}

	// Send debug to file as JSON
	fileEncoder := zap.NewProductionEncoderConfig()
	fileEncoder.EncodeTime = zapcore.ISO8601TimeEncoder
	fileLog, err := (zap.Config{
		Level:         zap.NewAtomicLevelAt(zap.DebugLevel),
		Encoding:      "json",
		EncoderConfig: fileEncoder,
		OutputPaths:   []string{"file://" + logsPath},
	}).Build()
	if err != nil {
		return nil, errs.Wrap(err)
	}

	log := zap.New(zapcore.NewTee(stderrCore, fileLog.Core()))

	// Overwrite the latest symlink
	if err := os.Symlink(logName, filepath.Join(logsDir, ".latest")); err != nil {
		return nil, errs.Wrap(err)
	}
	if err := os.Rename(filepath.Join(logsDir, ".latest"), filepath.Join(logsDir, "latest")); err != nil {
		return nil, errs.Wrap(err)
	}

	return log, nil
}
