package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"novelgrab/internal/config"
)

// RunSettingsWizard interactively writes a settings file, starting from
// the built-in defaults.
func RunSettingsWizard() error {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Settings wizard (press Enter to accept defaults)")

	defaults := config.Defaults()
	path := promptString(reader, "Settings file path", config.DefaultSettingsFile)
	catalog := promptString(reader, "Novel URL list", defaults.CatalogPath)
	chaptersDir := promptString(reader, "Chapters directory", defaults.ChaptersDir)
	pdfDir := promptString(reader, "PDF directory", defaults.PDFDir)
	timeout := promptInt(reader, "Timeout seconds", defaults.TimeoutSeconds)
	headless := promptBool(reader, "Headless browser (true/false)", *defaults.Headless)
	blockImages := promptBool(reader, "Block images (true/false)", *defaults.BlockImages)
	minDelay := promptInt(reader, "Min delay seconds between fetches", defaults.MinDelaySeconds)
	maxDelay := promptInt(reader, "Max delay seconds between fetches", defaults.MaxDelaySeconds)

	cfg := config.Settings{
		CatalogPath:     strings.TrimSpace(catalog),
		ChaptersDir:     strings.TrimSpace(chaptersDir),
		PDFDir:          strings.TrimSpace(pdfDir),
		TimeoutSeconds:  timeout,
		UserAgent:       defaults.UserAgent,
		Headless:        &headless,
		BlockImages:     &blockImages,
		MinDelaySeconds: minDelay,
		MaxDelaySeconds: maxDelay,
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func promptString(reader *bufio.Reader, label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func promptInt(reader *bufio.Reader, label string, def int) int {
	fmt.Printf("%s [%d]: ", label, def)
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	var val int
	_, err = fmt.Sscanf(line, "%d", &val)
	if err != nil {
		return def
	}
	return val
}

func promptBool(reader *bufio.Reader, label string, def bool) bool {
	defStr := "false"
	if def {
		defStr = "true"
	}
	fmt.Printf("%s [%s]: ", label, defStr)
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" {
		return def
	}
	return line == "true" || line == "1" || line == "yes" || line == "y"
}
