package app

import (
	"errors"
	"fmt"
	"strings"

	"novelgrab/internal/archive"
	"novelgrab/internal/catalog"
	"novelgrab/internal/classify"
	"novelgrab/internal/config"
	"novelgrab/internal/pdf"
	"novelgrab/internal/ui"
)

type RangeMode string

const (
	RangeAll    RangeMode = "all"
	RangeCustom RangeMode = "custom"
	RangeLatest RangeMode = "latest"
)

type PDFOptions struct {
	// Novel selects a downloaded novel: a slug or a case-insensitive
	// title fragment.
	Novel       string
	ChaptersDir string
	PDFDir      string
	Mode        RangeMode
	From, To    int
	Latest      int
	Debug       bool
}

func normalizePDFOptions(opts PDFOptions) (PDFOptions, error) {
	if strings.TrimSpace(opts.Novel) == "" {
		return opts, errors.New("novel is required")
	}
	defaults := config.Defaults()
	if opts.ChaptersDir == "" {
		opts.ChaptersDir = defaults.ChaptersDir
	}
	if opts.PDFDir == "" {
		opts.PDFDir = defaults.PDFDir
	}
	if opts.Mode == "" {
		opts.Mode = RangeAll
	}
	switch opts.Mode {
	case RangeAll:
	case RangeCustom:
		if opts.From < 1 || opts.To < opts.From {
			return opts, fmt.Errorf("invalid chapter range %d-%d", opts.From, opts.To)
		}
	case RangeLatest:
		if opts.Latest < 1 {
			return opts, fmt.Errorf("latest count %d must be positive", opts.Latest)
		}
	default:
		return opts, fmt.Errorf("unknown range mode %q", opts.Mode)
	}
	return opts, nil
}

// RunPDF renders downloaded chapters of one novel into a single PDF.
func RunPDF(opts PDFOptions) error {
	normalized, err := normalizePDFOptions(opts)
	if err != nil {
		return err
	}
	log := ui.NewLogger(normalized.Debug)

	store := archive.NewStore(normalized.ChaptersDir)
	slug, err := findNovel(store, normalized.Novel)
	if err != nil {
		return err
	}
	stored, err := store.List(slug)
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		return fmt.Errorf("no downloaded chapters for %s", slug)
	}

	switch normalized.Mode {
	case RangeCustom:
		stored = pdf.FilterRange(stored, normalized.From, normalized.To)
	case RangeLatest:
		stored = pdf.FilterLatest(stored, normalized.Latest)
	}
	if len(stored) == 0 {
		return fmt.Errorf("no downloaded chapters of %s in the requested range", slug)
	}

	classifier := classify.New()
	docs := make([]pdf.ChapterDoc, 0, len(stored))
	for _, st := range stored {
		title, body, err := store.Read(st)
		if err != nil {
			return err
		}
		docs = append(docs, pdf.ChapterDoc{
			Number: st.Number,
			Title:  title,
			Spans:  classifier.ClassifyText(body),
		})
	}

	path, err := pdf.NewRenderer(normalized.PDFDir).Render(catalog.DisplayTitle(slug), docs)
	if err != nil {
		return err
	}
	log.Successf("wrote %s (%d chapters)", path, len(docs))
	return nil
}

func findNovel(store *archive.Store, key string) (string, error) {
	novels, err := store.Novels()
	if err != nil {
		return "", err
	}
	if len(novels) == 0 {
		return "", errors.New("nothing downloaded yet")
	}
	key = strings.TrimSpace(key)
	lower := strings.ToLower(key)
	var matches []string
	for _, slug := range novels {
		if slug == key {
			return slug, nil
		}
		if strings.Contains(strings.ToLower(catalog.DisplayTitle(slug)), lower) {
			matches = append(matches, slug)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no downloaded novel matches %q", key)
	default:
		return "", fmt.Errorf("%q is ambiguous: %s", key, strings.Join(matches, ", "))
	}
}
