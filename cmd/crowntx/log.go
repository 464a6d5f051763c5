package main

import (
	"os"
	"path/filepath"

	"github.com/crownplatform/crownwire/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CRTX")

const (
	logFilename    = "crowntx.log"
	errLogFilename = "crowntx_err.log"
)

// initLog sends log entries to stderr and, when logDir is set, to rotated
// log files inside it. logLevel is parsed by logger.ParseAndSetLogLevels.
func initLog(logDir, logLevel string) error {
	err := logger.BackendLog.AddLogWriter(os.Stderr, logger.LevelTrace)
	if err != nil {
		return err
	}

	var logFile, errLogFile string
	if logDir != "" {
		logFile = filepath.Join(logDir, logFilename)
		errLogFile = filepath.Join(logDir, errLogFilename)
	}
	err = logger.InitLog(logFile, errLogFile)
	if err != nil {
		return err
	}
	return logger.ParseAndSetLogLevels(logLevel)
}
