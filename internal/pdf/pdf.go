// Package pdf builds a styled PDF from downloaded chapters. Each line is
// laid out according to its classified role, with a title page in front.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"novelgrab/internal/archive"
	"novelgrab/internal/classify"
)

// ChapterDoc is one chapter ready for layout.
type ChapterDoc struct {
	Number int
	Title  string
	Spans  []classify.Span
}

type Renderer struct {
	OutDir string

	newLayout func() Layout
	now       func() time.Time
}

func NewRenderer(outDir string) *Renderer {
	return &Renderer{
		OutDir:    outDir,
		newLayout: newFpdfLayout,
		now:       time.Now,
	}
}

var (
	siteSuffixRe  = regexp.MustCompile(`(?i)\s*[-–—|]\s*(?:☕\s*)?kat reading cafe.*$`)
	readOnlineRe  = regexp.MustCompile(`(?i)\s*[-–—|]\s*read\b.*\bonline.*$`)
	hashChapterRe = regexp.MustCompile(`(?i)\s*#\s*chapter\s*\d+\s*$`)
)

// CleanTitle strips site branding and navigation junk that page titles
// carry along, leaving just the chapter title.
func CleanTitle(title string) string {
	title = siteSuffixRe.ReplaceAllString(title, "")
	title = readOnlineRe.ReplaceAllString(title, "")
	title = hashChapterRe.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}

// Render writes a single PDF containing the given chapters and returns
// the output path. Nothing is left behind on failure.
func (r *Renderer) Render(novel string, docs []ChapterDoc) (string, error) {
	if len(docs) == 0 {
		return "", fmt.Errorf("no chapters to render for %q", novel)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Number < docs[j].Number })

	label := chapterLabel(docs)
	layout := r.newLayout()
	layout.AddTitlePage(novel, label, "Generated on "+r.now().Format("January 2, 2006"))
	for _, doc := range docs {
		layout.AddPageBreak()
		heading := CleanTitle(doc.Title)
		if heading == "" {
			heading = fmt.Sprintf("Chapter %d", doc.Number)
		}
		layout.AddHeading(heading)
		for _, span := range doc.Spans {
			layout.AddParagraph(span.Text, span.Role)
		}
	}

	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create pdf dir: %w", err)
	}
	final := filepath.Join(r.OutDir, fmt.Sprintf("%s - %s.pdf", novel, label))
	tmp := final + ".tmp"
	if err := layout.Save(tmp); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("finalize pdf: %w", err)
	}
	return final, nil
}

func chapterLabel(docs []ChapterDoc) string {
	first, last := docs[0].Number, docs[len(docs)-1].Number
	if first == last {
		return fmt.Sprintf("Chapter %d", first)
	}
	return fmt.Sprintf("Chapters %d-%d", first, last)
}

// FilterRange keeps chapters numbered from..to inclusive.
func FilterRange(stored []archive.Stored, from, to int) []archive.Stored {
	var out []archive.Stored
	for _, s := range stored {
		if s.Number >= from && s.Number <= to {
			out = append(out, s)
		}
	}
	return out
}

// FilterLatest keeps the n highest-numbered chapters.
func FilterLatest(stored []archive.Stored, n int) []archive.Stored {
	if n <= 0 || len(stored) == 0 {
		return nil
	}
	if n > len(stored) {
		n = len(stored)
	}
	return stored[len(stored)-n:]
}
