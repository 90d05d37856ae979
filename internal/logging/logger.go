// Package logging holds the process logger. Output goes to stderr so that
// --json output on stdout stays machine readable.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger.
var L = New(os.Stderr)

// New returns a logger with the CLI's defaults: warn level, no timestamps.
func New(w io.Writer) *clog.Logger {
	return clog.NewWithOptions(w, clog.Options{
		Level:  clog.WarnLevel,
		Prefix: "jira-assets",
	})
}

// SetLevel parses a level name (debug, info, warn, error) and applies it to L.
func SetLevel(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	lvl, err := clog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return fmt.Errorf("invalid log level %q", name)
	}
	L.SetLevel(lvl)
	return nil
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...any) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...any) {
	L.Error(fmt.Sprintf(format, v...))
}
