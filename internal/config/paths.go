package config

import "time"

const (
	DefaultSettingsFile = "settings.yaml"
	DefaultCatalogFile  = "novel_urls.txt"
	DefaultChaptersDir  = "chapters"
	DefaultPDFDir       = "pdf_novels"

	DefaultTimeout   = 45 * time.Second
	DefaultMinDelay  = 10 * time.Second
	DefaultMaxDelay  = 20 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Defaults returns a fully populated settings value, used both by the
// normalize step and by the init wizard as its starting point.
func Defaults() Settings {
	headless := true
	blockImages := true
	return Settings{
		CatalogPath:     DefaultCatalogFile,
		ChaptersDir:     DefaultChaptersDir,
		PDFDir:          DefaultPDFDir,
		TimeoutSeconds:  int(DefaultTimeout / time.Second),
		UserAgent:       DefaultUserAgent,
		Headless:        &headless,
		BlockImages:     &blockImages,
		MinDelaySeconds: int(DefaultMinDelay / time.Second),
		MaxDelaySeconds: int(DefaultMaxDelay / time.Second),
	}
}
