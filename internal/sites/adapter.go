// Package sites holds the per-website adaptation layer: each adapter
// knows how one site lays out its chapter lists and chapter pages, and
// which browser session policy it needs.
package sites

import (
	"context"
	"fmt"
	"strings"

	"novelgrab/internal/browser"
	"novelgrab/internal/catalog"
	"novelgrab/internal/textconv"

	"github.com/PuerkitoBio/goquery"
)

type SessionPolicy int

const (
	// PolicyPersistent reuses one browser session for the whole run.
	PolicyPersistent SessionPolicy = iota
	// PolicyFresh requires a brand-new session per chapter fetch plus a
	// randomized delay between fetches.
	PolicyFresh
)

func (p SessionPolicy) String() string {
	if p == PolicyFresh {
		return "fresh"
	}
	return "persistent"
}

type Chapter struct {
	Number int
	Title  string
	Body   string
}

type Adapter interface {
	Site() string
	Policy() SessionPolicy
	// Open loads the series landing page and prepares chapter navigation
	// (expanding volume lists, activating tabs, triggering lazy loads).
	Open(ctx context.Context, page browser.Page, entryURL string) error
	// ChapterAt resolves and extracts chapter n. It returns ErrNotFound
	// past the last available chapter, a TransientError on timeouts and
	// a StructuralError when the expected DOM is absent.
	ChapterAt(ctx context.Context, page browser.Page, n int) (Chapter, error)
}

// ForSite returns the adapter for a catalog site id.
func ForSite(site catalog.Site) (Adapter, error) {
	switch site {
	case catalog.SiteKatReadingCafe:
		return NewKatReadingCafe(), nil
	case catalog.SiteNovelBin:
		return NewNovelBin(), nil
	default:
		return nil, fmt.Errorf("unsupported site %q", site)
	}
}

func pageDocument(page browser.Page) (*goquery.Document, error) {
	html, err := page.Content()
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// extractContent tries each selector in order and returns the first
// non-empty chapter text, converted from the element's HTML.
func extractContent(page browser.Page, conv *textconv.Converter, selectors []string) (string, bool) {
	for _, sel := range selectors {
		html, err := page.InnerHTML(sel)
		if err == nil && strings.TrimSpace(html) != "" {
			if text, err := conv.Text(html); err == nil && strings.TrimSpace(text) != "" {
				return text, true
			}
		}
		if text, err := page.ExtractText(sel); err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), true
		}
	}
	return "", false
}

func chapterTitle(page browser.Page, n int) string {
	title, err := page.Title()
	title = strings.TrimSpace(title)
	if err != nil || title == "" {
		return fmt.Sprintf("Chapter %d", n)
	}
	return title
}
