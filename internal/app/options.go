package app

import (
	"errors"
	"strings"
	"time"

	"novelgrab/internal/config"
)

type Options struct {
	// Novel selects a catalog entry: a 1-based index, a slug, or a
	// case-insensitive title fragment.
	Novel       string
	Count       int
	CatalogPath string
	ChaptersDir string
	Timeout     time.Duration
	UserAgent   string
	Headless    bool
	BlockImages bool
	MinDelay    time.Duration
	MaxDelay    time.Duration
	Debug       bool
	// Quiet suppresses the progress bar, for non-interactive runs.
	Quiet bool
}

func normalizeOptions(opts Options) (Options, error) {
	if strings.TrimSpace(opts.Novel) == "" {
		return opts, errors.New("novel is required")
	}
	defaults := config.Defaults()
	if opts.CatalogPath == "" {
		opts.CatalogPath = defaults.CatalogPath
	}
	if opts.ChaptersDir == "" {
		opts.ChaptersDir = defaults.ChaptersDir
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Duration(defaults.TimeoutSeconds) * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}
	if opts.MinDelay == 0 {
		opts.MinDelay = time.Duration(defaults.MinDelaySeconds) * time.Second
	}
	if opts.MaxDelay == 0 {
		opts.MaxDelay = time.Duration(defaults.MaxDelaySeconds) * time.Second
	}
	if opts.MaxDelay < opts.MinDelay {
		return opts, errors.New("max delay must not be below min delay")
	}
	return opts, nil
}
