package sites

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"novelgrab/internal/browser"
	"novelgrab/internal/textconv"

	"github.com/PuerkitoBio/goquery"
)

const novelBinSite = "novelbin"

var novelBinChapterHref = regexp.MustCompile(`chapter-(\d+)`)

var novelBinContentSelectors = []string{
	"#chr-content",
	".chr-c",
	".chapter-content",
	".reading-content",
	".content",
	"article",
}

const novelBinScrollPasses = 3

// NovelBin rate-limits aggressively, so every chapter goes through a
// fresh browser session: the orchestrator recycles the session and calls
// Open again before each ChapterAt.
type NovelBin struct {
	conv *textconv.Converter
}

func NewNovelBin() *NovelBin {
	return &NovelBin{conv: textconv.NewConverter()}
}

func (b *NovelBin) Site() string          { return novelBinSite }
func (b *NovelBin) Policy() SessionPolicy { return PolicyFresh }

func (b *NovelBin) Open(ctx context.Context, page browser.Page, entryURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	listURL := strings.TrimRight(entryURL, "/") + "#tab-chapters-title"
	if err := page.Navigate(listURL); err != nil {
		return transient("open chapter list", err)
	}
	// The chapter tab may start collapsed; ignore failure, the list is
	// sometimes rendered without it.
	_ = page.Click("#tab-chapters-title")

	// The list lazy-loads as the page scrolls.
	for i := 0; i < novelBinScrollPasses; i++ {
		if err := page.Scroll(800); err != nil {
			break
		}
	}
	return nil
}

func (b *NovelBin) ChapterAt(ctx context.Context, page browser.Page, n int) (Chapter, error) {
	if err := ctx.Err(); err != nil {
		return Chapter{}, err
	}
	href, err := b.findChapterLink(page, n)
	if err != nil {
		return Chapter{}, err
	}
	if err := page.Navigate(href); err != nil {
		return Chapter{}, transient("open chapter page", err)
	}

	body, ok := extractContent(page, b.conv, novelBinContentSelectors)
	if !ok {
		return Chapter{}, structural(novelBinSite, "chapter content element not found")
	}
	return Chapter{Number: n, Title: chapterTitle(page, n), Body: body}, nil
}

func (b *NovelBin) findChapterLink(page browser.Page, n int) (string, error) {
	doc, err := pageDocument(page)
	if err != nil {
		return "", transient("read chapter list", err)
	}

	var href string
	maxSeen := 0
	doc.Find(`a[href*="/chapter-"]`).Each(func(_ int, s *goquery.Selection) {
		link, ok := s.Attr("href")
		if !ok {
			return
		}
		m := novelBinChapterHref.FindStringSubmatch(link)
		if m == nil {
			return
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			return
		}
		if num > maxSeen {
			maxSeen = num
		}
		if num == n {
			href = link
		}
	})

	switch {
	case href != "":
		return href, nil
	case maxSeen == 0:
		return "", structural(novelBinSite, "chapter list did not render")
	case n > maxSeen:
		return "", ErrNotFound
	default:
		return "", structural(novelBinSite, "chapter link missing from list")
	}
}
