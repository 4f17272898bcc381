// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

// Package log provides the leveled logger used throughout the module.
package log

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps a charmbracelet/log logger with the level helpers
// used by the transfer and polytope packages.
type Logger struct {
	*log.Logger
}

var (
	once      sync.Once
	singleton *Logger
)

// Get returns the package-wide Logger, creating it on first use.
func Get() *Logger {
	once.Do(func() {
		l := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "vsg",
		})
		l.SetLevel(log.InfoLevel)
		singleton = &Logger{l}
	})
	return singleton
}

// SetLevel changes the minimum severity logged by Get.
func SetLevel(level string) {
	l := Get()
	switch level {
	case "debug":
		l.SetLevel(log.DebugLevel)
	case "warn":
		l.SetLevel(log.WarnLevel)
	case "error":
		l.SetLevel(log.ErrorLevel)
	default:
		l.SetLevel(log.InfoLevel)
	}
}

// Debug logs msg at debug level with the given key/value pairs.
func Debug(msg string, kv ...any) { Get().Debug(msg, kv...) }

// Info logs msg at info level with the given key/value pairs.
func Info(msg string, kv ...any) { Get().Info(msg, kv...) }

// Warn logs msg at warn level with the given key/value pairs.
func Warn(msg string, kv ...any) { Get().Warn(msg, kv...) }

// Error logs msg at error level with the given key/value pairs.
func Error(msg string, kv ...any) { Get().Error(msg, kv...) }
