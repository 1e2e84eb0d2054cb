// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"io"
	"os"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSize  = 8 // megabytes
	logMaxAge   = 7 // days
	logMaxFiles = 4
)

// NewLogger returns a logger writing colored output to [console] and, if
// [LogFile] is set, JSON lines to a rotating file.
func (c *Config) NewLogger(prefix string, console io.WriteCloser) logging.Logger {
	if console == nil {
		console = os.Stderr
	}
	cores := []logging.WrappedCore{
		logging.NewWrappedCore(c.LogLevel, console, logging.Colors.ConsoleEncoder()),
	}
	if len(c.LogFile) > 0 {
		rw := &lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    logMaxSize,
			MaxAge:     logMaxAge,
			MaxBackups: logMaxFiles,
			Compress:   true,
		}
		cores = append(cores, logging.NewWrappedCore(c.LogLevel, rw, logging.JSON.FileEncoder()))
	}
	return logging.NewLogger(prefix, cores...)
}
