package logger

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// BackendLog is the logging backend shared by every subsystem logger of the
// process.
var BackendLog = NewBackend()

var (
	subsystemLoggers     = make(map[string]*Logger)
	subsystemLoggersLock sync.Mutex
)

// RegisterSubSystem returns the logger of the given subsystem tag, creating
// it on first use. Packages call it from their log.go.
func RegisterSubSystem(subsystem string) *Logger {
	subsystemLoggersLock.Lock()
	defer subsystemLoggersLock.Unlock()
	logger, exists := subsystemLoggers[subsystem]
	if !exists {
		logger = BackendLog.Logger(subsystem)
		subsystemLoggers[subsystem] = logger
	}
	return logger
}

// InitLog attaches logFile (every level) and errLogFile (warnings and up) to
// BackendLog and starts it. Empty paths are skipped.
func InitLog(logFile, errLogFile string) error {
	if logFile != "" {
		err := BackendLog.AddLogFile(logFile, LevelTrace)
		if err != nil {
			return errors.Wrapf(err, "error adding log file %s as log rotator for level %s", logFile, LevelTrace)
		}
	}
	if errLogFile != "" {
		err := BackendLog.AddLogFile(errLogFile, LevelWarn)
		if err != nil {
			return errors.Wrapf(err, "error adding log file %s as log rotator for level %s", errLogFile, LevelWarn)
		}
	}
	return BackendLog.Run()
}

// SetLogLevel sets the logging level for the provided subsystem. Invalid
// subsystems are ignored.
func SetLogLevel(subsystemID string, logLevel string) {
	subsystemLoggersLock.Lock()
	defer subsystemLoggersLock.Unlock()
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	level, _ := LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets the log level for all subsystem loggers to the passed
// level.
func SetLogLevels(logLevel string) {
	subsystemLoggersLock.Lock()
	defer subsystemLoggersLock.Unlock()
	level, _ := LevelFromString(logLevel)
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}

// SupportedSubsystems returns a sorted slice of the registered subsystems.
func SupportedSubsystems() []string {
	subsystemLoggersLock.Lock()
	defer subsystemLoggersLock.Unlock()
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

// ParseAndSetLogLevels accepts either a single level applied to every
// subsystem or a comma separated list of subsystem=level pairs.
func ParseAndSetLogLevels(logLevel string) error {
	if !strings.Contains(logLevel, "=") && !strings.Contains(logLevel, ",") {
		if _, ok := LevelFromString(logLevel); !ok {
			return errors.Errorf("the specified log level [%s] is invalid", logLevel)
		}
		SetLogLevels(logLevel)
		return nil
	}

	for _, pair := range strings.Split(logLevel, ",") {
		fields := strings.Split(pair, "=")
		if len(fields) != 2 {
			return errors.Errorf("the specified log level pair [%s] is malformed, "+
				"use SUBSYSTEM=LEVEL", pair)
		}
		subsysID, level := fields[0], fields[1]
		if !isSupportedSubsystem(subsysID) {
			return errors.Errorf("the specified subsystem [%s] is invalid, "+
				"supported subsystems are %s", subsysID, strings.Join(SupportedSubsystems(), ", "))
		}
		if _, ok := LevelFromString(level); !ok {
			return errors.Errorf("the specified log level [%s] is invalid", level)
		}
		SetLogLevel(subsysID, level)
	}
	return nil
}

func isSupportedSubsystem(subsysID string) bool {
	subsystemLoggersLock.Lock()
	defer subsystemLoggersLock.Unlock()
	_, ok := subsystemLoggers[subsysID]
	return ok
}

