package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"novelgrab/internal/app"
	"novelgrab/internal/config"
)

type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "error"
}

type downloadFlags struct {
	novel       string
	count       intFlag
	settings    string
	catalog     stringFlag
	chaptersDir stringFlag
	timeout     intFlag
	userAgent   stringFlag
	headless    boolFlag
	blockImages boolFlag
	minDelay    intFlag
	maxDelay    intFlag
	debug       boolFlag
	quiet       bool
}

// ParseDownload builds download options from flags, with the settings
// file filling in anything the command line did not set.
func ParseDownload(args []string) (app.Options, error) {
	fs := flag.NewFlagSet("novelgrab download", flag.ContinueOnError)
	parsed := downloadFlags{}

	fs.StringVar(&parsed.novel, "novel", "", "Novel to download: catalog index, slug, title fragment or URL")
	parsed.count.Value = 1
	fs.Var(&parsed.count, "count", "Number of chapters to download (1-50)")
	fs.StringVar(&parsed.settings, "settings", "", "Path to settings file (default: settings.yaml if present)")
	fs.Var(&parsed.catalog, "catalog", "Path to the novel URL list")
	fs.Var(&parsed.chaptersDir, "chapters-dir", "Directory chapters are saved under")
	fs.Var(&parsed.timeout, "timeout", "Per-navigation timeout in seconds")
	fs.Var(&parsed.userAgent, "user-agent", "Browser User-Agent override")
	parsed.headless.Value = true
	fs.Var(&parsed.headless, "headless", "Run the browser headless")
	parsed.blockImages.Value = true
	fs.Var(&parsed.blockImages, "block-images", "Abort image, media and font requests")
	fs.Var(&parsed.minDelay, "min-delay", "Minimum seconds between fresh-session fetches")
	fs.Var(&parsed.maxDelay, "max-delay", "Maximum seconds between fresh-session fetches")
	fs.Var(&parsed.debug, "debug", "Verbose logging")
	fs.BoolVar(&parsed.quiet, "quiet", false, "Suppress the progress bar")

	if err := fs.Parse(args); err != nil {
		return app.Options{}, ExitError{Code: 2, Err: err}
	}
	if parsed.novel == "" {
		return app.Options{}, ExitError{Code: 2, Err: errors.New("--novel is required")}
	}

	settings, err := loadSettings(parsed.settings)
	if err != nil {
		return app.Options{}, err
	}
	applyDownloadSettings(&parsed, settings)

	return app.Options{
		Novel:       parsed.novel,
		Count:       parsed.count.Value,
		CatalogPath: parsed.catalog.Value,
		ChaptersDir: parsed.chaptersDir.Value,
		Timeout:     time.Duration(parsed.timeout.Value) * time.Second,
		UserAgent:   parsed.userAgent.Value,
		Headless:    parsed.headless.Value,
		BlockImages: parsed.blockImages.Value,
		MinDelay:    time.Duration(parsed.minDelay.Value) * time.Second,
		MaxDelay:    time.Duration(parsed.maxDelay.Value) * time.Second,
		Debug:       parsed.debug.Value,
		Quiet:       parsed.quiet,
	}, nil
}

type pdfFlags struct {
	novel       string
	settings    string
	chaptersDir stringFlag
	pdfDir      stringFlag
	rangeStr    string
	debug       boolFlag
}

// ParsePDF builds PDF options. The range flag accepts "all", "A-B" for
// an inclusive chapter range, or "latest:N" for the newest N chapters.
func ParsePDF(args []string) (app.PDFOptions, error) {
	fs := flag.NewFlagSet("novelgrab pdf", flag.ContinueOnError)
	parsed := pdfFlags{}

	fs.StringVar(&parsed.novel, "novel", "", "Downloaded novel: slug or title fragment")
	fs.StringVar(&parsed.settings, "settings", "", "Path to settings file (default: settings.yaml if present)")
	fs.Var(&parsed.chaptersDir, "chapters-dir", "Directory chapters are saved under")
	fs.Var(&parsed.pdfDir, "pdf-dir", "Directory PDFs are written to")
	fs.StringVar(&parsed.rangeStr, "range", "all", "Chapters to include: all, A-B or latest:N")
	fs.Var(&parsed.debug, "debug", "Verbose logging")

	if err := fs.Parse(args); err != nil {
		return app.PDFOptions{}, ExitError{Code: 2, Err: err}
	}
	if parsed.novel == "" {
		return app.PDFOptions{}, ExitError{Code: 2, Err: errors.New("--novel is required")}
	}

	settings, err := loadSettings(parsed.settings)
	if err != nil {
		return app.PDFOptions{}, err
	}
	if !parsed.chaptersDir.WasSet && settings.ChaptersDir != "" {
		parsed.chaptersDir.Value = settings.ChaptersDir
	}
	if !parsed.pdfDir.WasSet && settings.PDFDir != "" {
		parsed.pdfDir.Value = settings.PDFDir
	}
	if !parsed.debug.WasSet && settings.Debug {
		parsed.debug.Value = true
	}

	opts := app.PDFOptions{
		Novel:       parsed.novel,
		ChaptersDir: parsed.chaptersDir.Value,
		PDFDir:      parsed.pdfDir.Value,
		Debug:       parsed.debug.Value,
	}
	if err := parseRange(parsed.rangeStr, &opts); err != nil {
		return app.PDFOptions{}, ExitError{Code: 2, Err: err}
	}
	return opts, nil
}

func parseRange(s string, opts *app.PDFOptions) error {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "" || s == "all":
		opts.Mode = app.RangeAll
	case strings.HasPrefix(s, "latest:"):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "latest:"))
		if err != nil || n < 1 {
			return fmt.Errorf("invalid latest count in range %q", s)
		}
		opts.Mode = app.RangeLatest
		opts.Latest = n
	case strings.Contains(s, "-"):
		from, to, _ := strings.Cut(s, "-")
		a, errA := strconv.Atoi(strings.TrimSpace(from))
		b, errB := strconv.Atoi(strings.TrimSpace(to))
		if errA != nil || errB != nil || a < 1 || b < a {
			return fmt.Errorf("invalid chapter range %q, expected A-B", s)
		}
		opts.Mode = app.RangeCustom
		opts.From = a
		opts.To = b
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid range %q, expected all, A-B or latest:N", s)
		}
		opts.Mode = app.RangeCustom
		opts.From = n
		opts.To = n
	}
	return nil
}

// loadSettings reads the named settings file, or the default one when it
// exists. An explicitly named file must load; the default may be absent.
func loadSettings(path string) (config.Settings, error) {
	if path != "" {
		s, err := config.Load(path)
		if err != nil {
			return config.Settings{}, fmt.Errorf("load settings: %w", err)
		}
		return s, nil
	}
	s, err := config.Load(config.DefaultSettingsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Settings{}, nil
		}
		return config.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return s, nil
}

func applyDownloadSettings(parsed *downloadFlags, s config.Settings) {
	if !parsed.catalog.WasSet && s.CatalogPath != "" {
		parsed.catalog.Value = s.CatalogPath
	}
	if !parsed.chaptersDir.WasSet && s.ChaptersDir != "" {
		parsed.chaptersDir.Value = s.ChaptersDir
	}
	if !parsed.timeout.WasSet && s.TimeoutSeconds > 0 {
		parsed.timeout.Value = s.TimeoutSeconds
	}
	if !parsed.userAgent.WasSet && s.UserAgent != "" {
		parsed.userAgent.Value = s.UserAgent
	}
	if !parsed.headless.WasSet && s.Headless != nil {
		parsed.headless.Value = *s.Headless
	}
	if !parsed.blockImages.WasSet && s.BlockImages != nil {
		parsed.blockImages.Value = *s.BlockImages
	}
	if !parsed.minDelay.WasSet && s.MinDelaySeconds > 0 {
		parsed.minDelay.Value = s.MinDelaySeconds
	}
	if !parsed.maxDelay.WasSet && s.MaxDelaySeconds > 0 {
		parsed.maxDelay.Value = s.MaxDelaySeconds
	}
	if !parsed.debug.WasSet && s.Debug {
		parsed.debug.Value = true
	}
}
