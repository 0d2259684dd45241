// Package log is the logger used by kontak core. It standardizes logging
// formats across the server and console, allows for a debug mode, and lets
// subsystems specify their own name so each subsystem's logs are easy to
// isolate.
package log

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

var debugprefix = "DEBUG: "
var base = logrus.New()

func init() {
	base.Out = os.Stdout
	base.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
}

// DebugPrefix overrides the default "DEBUG: " prefix for debug logs.
func DebugPrefix(s string) {
	debugprefix = s
}

// SetDebug shows or hides debug logs. Default: false (debug off)
func SetDebug(b bool) {
	if b {
		base.Level = logrus.DebugLevel
	} else {
		base.Level = logrus.InfoLevel
	}
}

// Debug logs a statement with the debug prefix if SetDebug(true) has been
// called and ends with a new line.
func Debug(v ...interface{}) {
	Debugf("%s", fmt.Sprintln(v...))
}

// Debugf logs a statement with the debug prefix if SetDebug(true) has been
// called, allowing for custom formatting.
func Debugf(format string, v ...interface{}) {
	base.Debugf(debugprefix+format, v...)
}

// Info logs a statement and ends with a new line.
func Info(v ...interface{}) {
	Infof("%s", fmt.Sprintln(v...))
}

// Infof logs a statement, allowing for custom formatting.
func Infof(format string, v ...interface{}) {
	base.Infof(format, v...)
}

// Fatal logs a statement and kills the running process.
func Fatal(v ...interface{}) {
	Fatalf("%s", fmt.Sprintln(v...))
}

// Fatalf logs a statement and kills the running process, allowing for custom
// formatting.
func Fatalf(format string, v ...interface{}) {
	base.Fatalf(format, v...)
}

// Logger carries a prefix representing a subsystem's name, set on each log
// line so a subsystem's output can be picked out of the combined stream.
type Logger struct {
	entry *logrus.Entry
}

// New returns a Logger which supports a custom prefix representing a
// subsystem's name.
func New(name string) *Logger {
	lg := logrus.New()
	lg.Out = os.Stdout
	lg.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	if len(name) == 0 {
		return &Logger{entry: logrus.NewEntry(lg)}
	}
	return &Logger{entry: lg.WithField("sub", name)}
}

// SetDebug shows or hides debug logs. Default: false (debug off)
func (l *Logger) SetDebug(b bool) {
	if b {
		l.entry.Logger.Level = logrus.DebugLevel
	} else {
		l.entry.Logger.Level = logrus.InfoLevel
	}
}

// Debug logs a statement with the debug prefix if SetDebug(true) has been
// called and ends with a new line.
func (l *Logger) Debug(v ...interface{}) {
	l.Debugf("%s", fmt.Sprintln(v...))
}

// Debugf logs a statement with the debug prefix if SetDebug(true) has been
// called, allowing for custom formatting.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.entry.Debugf(debugprefix+format, v...)
}

// Info logs a statement and ends with a new line.
func (l *Logger) Info(v ...interface{}) {
	l.Infof("%s", fmt.Sprintln(v...))
}

// Infof logs a statement, allowing for custom formatting.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

// Fatal logs a statement and kills the running process.
func (l *Logger) Fatal(v ...interface{}) {
	l.Fatalf("%s", fmt.Sprintln(v...))
}

// Fatalf logs a statement and kills the running process, allowing for custom
// formatting.
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.entry.Fatalf(format, v...)
}
