// Package app wires the catalog, browser session manager, archive and
// download orchestrator into the operations the CLI and TUI expose.
package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"novelgrab/internal/archive"
	"novelgrab/internal/browser"
	"novelgrab/internal/catalog"
	"novelgrab/internal/download"
	"novelgrab/internal/ui"
)

func Run(ctx context.Context, opts Options) error {
	normalized, err := normalizeOptions(opts)
	if err != nil {
		return err
	}

	var entry catalog.Entry
	if strings.Contains(normalized.Novel, "://") {
		entry = catalog.Infer(normalized.Novel)
	} else {
		entries, err := catalog.Load(normalized.CatalogPath)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("catalog %s lists no novels", normalized.CatalogPath)
		}
		entry, err = FindEntry(entries, normalized.Novel)
		if err != nil {
			return err
		}
	}

	log := ui.NewLogger(normalized.Debug)
	manager := browser.NewManager(browser.Options{
		Headless:    normalized.Headless,
		BlockImages: normalized.BlockImages,
		UserAgent:   normalized.UserAgent,
		Timeout:     normalized.Timeout,
	})
	orch := download.NewOrchestrator(manager, archive.NewStore(normalized.ChaptersDir), log)
	orch.MinDelay = normalized.MinDelay
	orch.MaxDelay = normalized.MaxDelay

	var bar *ui.Progress
	if !normalized.Quiet {
		orch.Observe = func(e download.Event) {
			if bar == nil {
				bar = ui.NewProgress(e.Operation, e.Requested)
			}
			bar.Update(e.Current, e.LastTitle, e.Remaining)
		}
	}

	sum, err := orch.Run(ctx, download.Job{Entry: entry, Count: normalized.Count})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	if sum.Exhausted {
		log.Successf("%s: downloaded %d of %d chapters, no more published yet", entry.Title, sum.Downloaded, sum.Requested)
	} else {
		log.Successf("%s: downloaded %d chapters", entry.Title, sum.Downloaded)
	}
	return nil
}

// FindEntry resolves a user-supplied key against the catalog: a 1-based
// index, an exact slug, or a unique case-insensitive title fragment.
func FindEntry(entries []catalog.Entry, key string) (catalog.Entry, error) {
	key = strings.TrimSpace(key)
	if idx, err := strconv.Atoi(key); err == nil {
		if idx < 1 || idx > len(entries) {
			return catalog.Entry{}, fmt.Errorf("novel index %d out of range 1-%d", idx, len(entries))
		}
		return entries[idx-1], nil
	}

	lower := strings.ToLower(key)
	for _, e := range entries {
		if e.Slug == key {
			return e, nil
		}
	}
	var matches []catalog.Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), lower) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return catalog.Entry{}, fmt.Errorf("no catalog entry matches %q", key)
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.Title)
		}
		return catalog.Entry{}, fmt.Errorf("%q is ambiguous: %s", key, strings.Join(names, ", "))
	}
}
