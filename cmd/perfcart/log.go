package main

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger returns a logger writing text records on STDERR, with
// debug records only when the verbose flag is set.
func (rcc *rootCmdConfig) Logger() *slog.Logger {
	level := slog.LevelWarn
	if rcc.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Logf logs the formatted message when the verbose flag is set
func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	if !rcc.verbose {
		return
	}
	rcc.Logger().Info(fmt.Sprintf(format, a...))
}
