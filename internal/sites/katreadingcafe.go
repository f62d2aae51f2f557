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

const katSite = "katreadingcafe"

// Chapter links on the series page are labeled "Vol. 1 Ch. N".
var katChapterLabel = regexp.MustCompile(`^Vol\.\s*1\s*Ch\.\s*(\d+)`)

var katContentSelectors = []string{
	"div.entry-content",
	".post-content",
	".chapter-content",
	"article",
	".content",
}

// KatReadingCafe keeps one session for the whole run. The series page
// lists every chapter once the volume section is expanded, so Open
// collects the chapter link map a single time.
type KatReadingCafe struct {
	conv     *textconv.Converter
	chapters map[int]string
}

func NewKatReadingCafe() *KatReadingCafe {
	return &KatReadingCafe{conv: textconv.NewConverter()}
}

func (k *KatReadingCafe) Site() string          { return katSite }
func (k *KatReadingCafe) Policy() SessionPolicy { return PolicyPersistent }

func (k *KatReadingCafe) Open(ctx context.Context, page browser.Page, entryURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := page.Navigate(entryURL); err != nil {
		return transient("open series page", err)
	}
	if err := page.WaitFor("body"); err != nil {
		return transient("wait for series page", err)
	}

	links, err := k.chapterLinks(page)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		// Volume list starts collapsed on some series pages.
		if err := page.Click(`text=Vol. 1`); err != nil {
			return structural(katSite, "volume list toggle not found")
		}
		if links, err = k.chapterLinks(page); err != nil {
			return err
		}
	}
	if len(links) == 0 {
		return structural(katSite, "no chapter links on series page")
	}
	k.chapters = links
	return nil
}

func (k *KatReadingCafe) chapterLinks(page browser.Page) (map[int]string, error) {
	doc, err := pageDocument(page)
	if err != nil {
		return nil, transient("read series page", err)
	}
	links := map[int]string{}
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		m := katChapterLabel.FindStringSubmatch(strings.TrimSpace(s.Text()))
		if m == nil {
			return
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			return
		}
		if href, ok := s.Attr("href"); ok && href != "" {
			links[num] = href
		}
	})
	return links, nil
}

func (k *KatReadingCafe) ChapterAt(ctx context.Context, page browser.Page, n int) (Chapter, error) {
	if err := ctx.Err(); err != nil {
		return Chapter{}, err
	}
	href, ok := k.chapters[n]
	if !ok {
		return Chapter{}, ErrNotFound
	}
	if err := page.Navigate(href); err != nil {
		return Chapter{}, transient("open chapter page", err)
	}

	body, ok := extractContent(page, k.conv, katContentSelectors)
	if !ok {
		return Chapter{}, structural(katSite, "chapter content element not found")
	}
	return Chapter{Number: n, Title: chapterTitle(page, n), Body: body}, nil
}
