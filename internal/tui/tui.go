// Package tui is the interactive front door: pick a novel, pick how
// many chapters, or build a PDF, without remembering any flags.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"novelgrab/internal/app"
	"novelgrab/internal/archive"
	"novelgrab/internal/catalog"
	"novelgrab/internal/config"
	"novelgrab/internal/download"
)

type Result struct {
	RunNow   bool
	Download *app.Options
	PDF      *app.PDFOptions
}

func Run() (Result, error) {
	printBanner()
	settings := loadSettings()

	var action string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to do?").
				Options(
					huh.NewOption("Download chapters", "download"),
					huh.NewOption("Build a PDF from downloaded chapters", "pdf"),
					huh.NewOption("Quit", "quit"),
				).
				Value(&action),
		),
	).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return Result{}, err
	}

	switch action {
	case "download":
		return runDownloadForm(settings)
	case "pdf":
		return runPDFForm(settings)
	default:
		return Result{}, nil
	}
}

func printBanner() {
	fmt.Print(`
                        _                 _
  _ __   _____   _____| | __ _ _ __ __ _| |__
 | '_ \ / _ \ \ / / _ \ |/ _` + "`" + ` | '__/ _` + "`" + ` | '_ \
 | | | | (_) \ V /  __/ | (_| | | | (_| | |_) |
 |_| |_|\___/ \_/ \___|_|\__, |_|  \__,_|_.__/
                         |___/
`)
}

func loadSettings() config.Settings {
	s, err := config.Load(config.DefaultSettingsFile)
	if err != nil {
		return config.Settings{}
	}
	return s
}

func runDownloadForm(settings config.Settings) (Result, error) {
	catalogPath := settings.CatalogPath
	if catalogPath == "" {
		catalogPath = config.DefaultCatalogFile
	}
	entries, err := catalog.Load(catalogPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("no catalog at %s, add one URL per line and retry", catalogPath)
		}
		return Result{}, err
	}
	if len(entries) == 0 {
		return Result{}, fmt.Errorf("catalog %s lists no novels", catalogPath)
	}

	var slug string
	countStr := "1"
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Novel").
				Options(novelOptions(entries)...).
				Value(&slug),
			huh.NewInput().
				Title(fmt.Sprintf("Chapters to download (1-%d)", download.MaxChaptersPerRun)).
				Value(&countStr).
				Validate(validateCount),
		),
	).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return Result{}, err
	}

	count, err := parseCount(countStr)
	if err != nil {
		return Result{}, err
	}
	return Result{
		RunNow: true,
		Download: &app.Options{
			Novel:       slug,
			Count:       count,
			CatalogPath: catalogPath,
			ChaptersDir: settings.ChaptersDir,
			UserAgent:   settings.UserAgent,
			Headless:    boolOr(settings.Headless, true),
			BlockImages: boolOr(settings.BlockImages, true),
			Debug:       settings.Debug,
		},
	}, nil
}

func runPDFForm(settings config.Settings) (Result, error) {
	chaptersDir := settings.ChaptersDir
	if chaptersDir == "" {
		chaptersDir = config.DefaultChaptersDir
	}
	novels, err := archive.NewStore(chaptersDir).Novels()
	if err != nil {
		return Result{}, err
	}
	if len(novels) == 0 {
		return Result{}, errors.New("nothing downloaded yet, download some chapters first")
	}

	var slug, mode string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Novel").
				Options(downloadedOptions(novels)...).
				Value(&slug),
			huh.NewSelect[string]().
				Title("Chapters to include").
				Options(
					huh.NewOption("All downloaded chapters", string(app.RangeAll)),
					huh.NewOption("A custom range", string(app.RangeCustom)),
					huh.NewOption("The latest N chapters", string(app.RangeLatest)),
				).
				Value(&mode),
		),
	).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return Result{}, err
	}

	opts := &app.PDFOptions{
		Novel:       slug,
		ChaptersDir: chaptersDir,
		PDFDir:      settings.PDFDir,
		Mode:        app.RangeMode(mode),
		Debug:       settings.Debug,
	}
	if err := promptRangeDetails(opts); err != nil {
		return Result{}, err
	}
	return Result{RunNow: true, PDF: opts}, nil
}

func promptRangeDetails(opts *app.PDFOptions) error {
	switch opts.Mode {
	case app.RangeCustom:
		fromStr, toStr := "1", "1"
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("First chapter").Value(&fromStr).Validate(validatePositiveInt),
				huh.NewInput().Title("Last chapter").Value(&toStr).Validate(validatePositiveInt),
			),
		).WithTheme(huh.ThemeDracula())
		if err := form.Run(); err != nil {
			return err
		}
		opts.From, _ = strconv.Atoi(strings.TrimSpace(fromStr))
		opts.To, _ = strconv.Atoi(strings.TrimSpace(toStr))
		if opts.To < opts.From {
			return fmt.Errorf("invalid chapter range %d-%d", opts.From, opts.To)
		}
	case app.RangeLatest:
		latestStr := "10"
		if err := huh.NewInput().Title("How many of the latest chapters?").Value(&latestStr).Validate(validatePositiveInt).Run(); err != nil {
			return err
		}
		opts.Latest, _ = strconv.Atoi(strings.TrimSpace(latestStr))
	}
	return nil
}

func novelOptions(entries []catalog.Entry) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(entries))
	for _, e := range entries {
		label := e.Title
		if e.Site != catalog.SiteUnknown {
			label = fmt.Sprintf("%s (%s)", e.Title, e.Site)
		}
		opts = append(opts, huh.NewOption(label, e.Slug))
	}
	return opts
}

func downloadedOptions(novels []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(novels))
	for _, slug := range novels {
		opts = append(opts, huh.NewOption(catalog.DisplayTitle(slug), slug))
	}
	return opts
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func validateCount(s string) error {
	_, err := parseCount(s)
	return err
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("must be a whole number")
	}
	if n < 1 || n > download.MaxChaptersPerRun {
		return 0, fmt.Errorf("must be between 1 and %d", download.MaxChaptersPerRun)
	}
	return n, nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("must be a whole number")
	}
	if n < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}
