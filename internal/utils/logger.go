package utils

import (
	"fmt"
	"log"
	"strings"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugMode      bool
	CurrentLevel   LogLevel = LevelInfo
	ShowRaylibInfo bool
	ShowDebugUI    bool
)

const colorReset = "\033[0m"

var levelStyles = [...]struct {
	name  string
	color string
}{
	LevelDebug: {"DEBUG", "\033[36m"},
	LevelInfo:  {"INFO", "\033[34m"},
	LevelWarn:  {"WARN", "\033[33m"},
	LevelError: {"ERROR", "\033[31m"},
}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelStyles) {
		return "UNKNOWN"
	}
	return levelStyles[l].name
}

// ParseLevel maps a -log flag value to a LogLevel. "warning" is accepted
// for warn and an empty name means info.
func ParseLevel(name string) (LogLevel, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	switch key {
	case "":
		return LevelInfo, nil
	case "WARNING":
		return LevelWarn, nil
	}
	for l, style := range levelStyles {
		if style.name == key {
			return LogLevel(l), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

func logMessage(level LogLevel, format string, v ...any) {
	if level < CurrentLevel {
		return
	}
	style := levelStyles[level]
	log.Printf(style.color+"["+style.name+"]"+colorReset+" "+format, v...)
}

// Info, Debug, Warn and Error log through the standard logger with a
// colored level tag. Messages below CurrentLevel are dropped.
func Info(format string, v ...any)  { logMessage(LevelInfo, format, v...) }
func Debug(format string, v ...any) { logMessage(LevelDebug, format, v...) }
func Warn(format string, v ...any)  { logMessage(LevelWarn, format, v...) }
func Error(format string, v ...any) { logMessage(LevelError, format, v...) }

// raylib TraceLogLevel values
const (
	raylibTrace   = 1
	raylibDebug   = 2
	raylibInfo    = 3
	raylibWarning = 4
	raylibError   = 5
	raylibFatal   = 6
)

// raylibLevel maps a raylib trace level onto ours. Raylib's info output is
// chatty, so it is only shown with ShowRaylibInfo or at debug level.
func raylibLevel(level int) (LogLevel, bool) {
	switch level {
	case raylibTrace, raylibDebug:
		return LevelDebug, true
	case raylibInfo:
		if ShowRaylibInfo || CurrentLevel <= LevelDebug {
			return LevelInfo, true
		}
		return LevelInfo, false
	case raylibWarning:
		return LevelWarn, true
	case raylibError, raylibFatal:
		return LevelError, true
	}
	return LevelDebug, false
}

// RaylibLogCallback is installed with rl.SetTraceLogCallback so raylib's
// own messages go through this logger, tagged [RAYLIB].
func RaylibLogCallback(level int, text string) {
	if l, ok := raylibLevel(level); ok {
		logMessage(l, "\033[35m[RAYLIB]"+colorReset+" %s", text)
	}
}
