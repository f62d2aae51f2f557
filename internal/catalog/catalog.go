// Package catalog reads the user-maintained novel list and maps each URL
// to a display title, an output slug and a source site.
package catalog

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"
	"unicode"

	"novelgrab/internal/sanitize"
)

type Site string

const (
	SiteKatReadingCafe Site = "katreadingcafe"
	SiteNovelBin       Site = "novelbin"
	SiteUnknown        Site = "unknown"
)

type Entry struct {
	Title string
	URL   string
	Site  Site
	Slug  string
}

// Load parses the catalog file: one URL per line, blank lines and lines
// starting with # are skipped.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	entries := []Entry{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, Infer(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return entries, nil
}

// Infer builds an Entry from a bare URL. The site is detected from the
// host, the title from the URL's novel slug.
func Infer(raw string) Entry {
	site := detectSite(raw)
	slug := novelSlug(raw)
	return Entry{
		Title: DisplayTitle(slug),
		URL:   raw,
		Site:  site,
		Slug:  sanitize.Slug(slug),
	}
}

func detectSite(raw string) Site {
	host := hostOf(raw)
	switch {
	case strings.Contains(host, "katreadingcafe.com"):
		return SiteKatReadingCafe
	case strings.Contains(host, "novelbin."):
		return SiteNovelBin
	default:
		return SiteUnknown
	}
}

func hostOf(raw string) string {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// novelSlug picks the path segment that names the novel: the last
// segment once any trailing slash is dropped. Both supported sites put
// the novel name there.
func novelSlug(raw string) string {
	trimmed := strings.TrimRight(raw, "/")
	parts := strings.Split(trimmed, "/")
	return parts[len(parts)-1]
}

// DisplayTitle turns a URL slug into a human-facing novel title.
func DisplayTitle(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		words[i] = string(r)
	}
	title := strings.Join(words, " ")
	if title == "" {
		return slug
	}
	return title
}
