// Package ui holds the terminal-facing pieces: a small leveled logger and
// the progress bar used while downloading.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	warnTag  = color.New(color.FgYellow).Sprint("[WARN]")
	errorTag = color.New(color.FgRed).Sprint("[ERROR]")
	okTag    = color.New(color.FgGreen).Sprint("[OK]")
)

type Logger struct {
	Debug bool
}

func NewLogger(debug bool) *Logger {
	return &Logger{Debug: debug}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, warnTag+" "+format+"\n", args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, errorTag+" "+format+"\n", args...)
}

func (l *Logger) Successf(format string, args ...any) {
	fmt.Printf(okTag+" "+format+"\n", args...)
}
