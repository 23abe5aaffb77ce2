// Package log sets up file logging. The terminal belongs to the TUI, so
// entries go to a dated file in the XDG state directory.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/llehouerou/rpgmplay/internal/config"
)

const appName = "rpgmplay"

// Dir returns the directory log files are written to.
func Dir() string {
	return filepath.Join(xdg.StateHome, appName)
}

// FileName returns the log file name for the given day.
func FileName(now time.Time) string {
	return fmt.Sprintf("%s.log", now.Format("2006-01-02"))
}

// Setup creates a logger writing to dir on fs. When logging is disabled the
// logger discards everything. The returned closer releases the log file.
func Setup(fs afero.Fs, dir string, cfg config.LogConfig, now time.Time) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	if cfg.Enabled != nil && !*cfg.Enabled {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}

	if dir == "" {
		return nil, nil, errors.New("log directory path is empty")
	}
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	f, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o640)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)

	if cfg.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
