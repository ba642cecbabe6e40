// Package log writes daily log files through logrus. Nothing is emitted unless logs.write is on.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aiko-cli/aiko/constant"
	"github.com/aiko-cli/aiko/filesystem"
	"github.com/aiko-cli/aiko/key"
	"github.com/aiko-cli/aiko/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Ext is the extension of daily log files.
const Ext = ".log"

var (
	enabled bool
	logger  = newLogger(io.Discard)
)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&LineFormatter{Default: constant.Aiko})
	return l
}

// FileName is the daily log file name for t.
func FileName(t time.Time) string {
	return t.Format("2006-01-02") + Ext
}

// Setup opens today's log file and applies the configured format and level.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, FileName(time.Now()))
	f, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	configure(f, viper.GetBool(key.LogsJson), viper.GetString(key.LogsLevel))
	return nil
}

func configure(out io.Writer, json bool, level string) {
	logger.SetOutput(out)

	if json {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&LineFormatter{Default: constant.Aiko})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
}

// Files lists the daily log files, newest first.
func Files() ([]string, error) {
	dir := where.Logs()
	infos, err := afero.ReadDir(filesystem.API(), dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, info := range infos {
		if !info.IsDir() && strings.HasSuffix(info.Name(), Ext) {
			names = append(names, info.Name())
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Entry is a logger bound to a component name.
type Entry struct {
	e *logrus.Entry
}

// Component returns a logger whose lines carry name in the component column.
func Component(name string) *Entry {
	return &Entry{e: logger.WithField(ComponentField, name)}
}

// Error logs at error level.
func (c *Entry) Error(args ...any) {
	if enabled {
		c.e.Error(args...)
	}
}

// Errorf logs a formatted message at error level.
func (c *Entry) Errorf(format string, args ...any) {
	if enabled {
		c.e.Errorf(format, args...)
	}
}

// Warn logs at warning level.
func (c *Entry) Warn(args ...any) {
	if enabled {
		c.e.Warn(args...)
	}
}

// Warnf logs a formatted message at warning level.
func (c *Entry) Warnf(format string, args ...any) {
	if enabled {
		c.e.Warnf(format, args...)
	}
}

// Info logs at info level.
func (c *Entry) Info(args ...any) {
	if enabled {
		c.e.Info(args...)
	}
}

// Infof logs a formatted message at info level.
func (c *Entry) Infof(format string, args ...any) {
	if enabled {
		c.e.Infof(format, args...)
	}
}

// Debug logs at debug level.
func (c *Entry) Debug(args ...any) {
	if enabled {
		c.e.Debug(args...)
	}
}

// Debugf logs a formatted message at debug level.
func (c *Entry) Debugf(format string, args ...any) {
	if enabled {
		c.e.Debugf(format, args...)
	}
}

// Error logs at error level on the default logger.
func Error(args ...any) {
	if enabled {
		logger.Error(args...)
	}
}

// Errorf logs a formatted message at error level on the default logger.
func Errorf(format string, args ...any) {
	if enabled {
		logger.Errorf(format, args...)
	}
}

// Warn logs at warning level on the default logger.
func Warn(args ...any) {
	if enabled {
		logger.Warn(args...)
	}
}

// Warnf logs a formatted message at warning level on the default logger.
func Warnf(format string, args ...any) {
	if enabled {
		logger.Warnf(format, args...)
	}
}

// Info logs at info level on the default logger.
func Info(args ...any) {
	if enabled {
		logger.Info(args...)
	}
}

// Infof logs a formatted message at info level on the default logger.
func Infof(format string, args ...any) {
	if enabled {
		logger.Infof(format, args...)
	}
}

// Debug logs at debug level on the default logger.
func Debug(args ...any) {
	if enabled {
		logger.Debug(args...)
	}
}

// Debugf logs a formatted message at debug level on the default logger.
func Debugf(format string, args ...any) {
	if enabled {
		logger.Debugf(format, args...)
	}
}
