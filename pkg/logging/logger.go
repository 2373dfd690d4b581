package logging

import (
	"log"
	"os"
)

// Level represents a log severity. Selecting a level enables it and every
// level above it: error < warn < info < debug.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var (
	currentLevel Level

	errorLogger *log.Logger
	warnLogger  *log.Logger
	infoLogger  *log.Logger
	debugLogger *log.Logger
)

// ParseLevel maps a LOG_LEVEL string to a Level. Unknown values fall back
// to info.
func ParseLevel(s string) Level {
	switch s {
	case "error":
		return LevelError
	case "warn":
		return LevelWarn
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// InitLogging initializes the level loggers with the given threshold
func InitLogging(level Level) {
	currentLevel = level
	errorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	warnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	infoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	debugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// Errorf logs error level messages
func Errorf(format string, v ...interface{}) {
	if errorLogger != nil && currentLevel >= LevelError {
		errorLogger.Printf(format, v...)
	}
}

// Warnf logs warning level messages
func Warnf(format string, v ...interface{}) {
	if warnLogger != nil && currentLevel >= LevelWarn {
		warnLogger.Printf(format, v...)
	}
}

// Infof logs info level messages
func Infof(format string, v ...interface{}) {
	if infoLogger != nil && currentLevel >= LevelInfo {
		infoLogger.Printf(format, v...)
	}
}

// Debugf logs debug level messages
func Debugf(format string, v ...interface{}) {
	if debugLogger != nil && currentLevel >= LevelDebug {
		debugLogger.Printf(format, v...)
	}
}
