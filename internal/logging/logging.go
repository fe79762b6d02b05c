// Package logging is a small leveled logger over the standard log package.
// The terminal belongs to the UI, so output goes to a file opened with
// tea.LogToFile or is discarded.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var current int32 = int32(LevelInfo)

func init() {
	log.SetOutput(io.Discard)
}

// ParseLevel maps a level name; ok is false for unknown names.
func ParseLevel(s string) (Level, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// SetLevel sets the global level from its name. Unknown names are ignored.
func SetLevel(s string) {
	if l, ok := ParseLevel(s); ok {
		atomic.StoreInt32(&current, int32(l))
	}
}

func getLevel() Level { return Level(atomic.LoadInt32(&current)) }

// ToFile sends log output to path. The caller closes the returned file.
func ToFile(path string) (*os.File, error) {
	f, err := tea.LogToFile(path, "parcoords")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	return f, nil
}

// SetOutput redirects logging, mainly for tests.
func SetOutput(w io.Writer) { log.SetOutput(w) }

func logf(l Level, format string, args ...interface{}) {
	if getLevel() > l {
		return
	}
	prefix := "INFO"
	switch l {
	case LevelDebug:
		prefix = "DEBUG"
	case LevelWarn:
		prefix = "WARN"
	case LevelError:
		prefix = "ERROR"
	}
	if len(args) == 0 {
		log.Printf("[%s] %s", prefix, format)
		return
	}
	log.Printf("[%s] %s", prefix, fmt.Sprintf(format, args...))
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }
