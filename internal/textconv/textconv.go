// Package textconv flattens extracted chapter HTML into readable plain
// text while keeping paragraph boundaries, so both site adapters archive
// the same shape of text.
package textconv

import (
	"regexp"
	"strings"

	htmltomd "github.com/JohannesKaufmann/html-to-markdown"
)

type Converter struct {
	md *htmltomd.Converter
}

func NewConverter() *Converter {
	return &Converter{md: htmltomd.NewConverter("", true, nil)}
}

// Text converts a chapter's content HTML to plain text. Markdown
// structure produced by the converter is stripped back out: the archive
// stores prose, not markup.
func (c *Converter) Text(html string) (string, error) {
	md, err := c.md.ConvertString(html)
	if err != nil {
		return "", err
	}
	return stripMarkdown(md), nil
}

var (
	headingRe   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	linkRe      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	imageRe     = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	emphasisRe  = regexp.MustCompile(`(\*\*|__|\*|_)([^*_]+)(\*\*|__|\*|_)`)
	blankRunsRe = regexp.MustCompile(`\n{3,}`)
	escapeRe    = regexp.MustCompile(`\\([\\` + "`" + `*_{}\[\]()#+.!>-])`)
)

func stripMarkdown(md string) string {
	out := strings.ReplaceAll(md, "\r\n", "\n")
	out = imageRe.ReplaceAllString(out, "")
	out = linkRe.ReplaceAllString(out, "$1")
	out = headingRe.ReplaceAllString(out, "")
	out = emphasisRe.ReplaceAllString(out, "$2")
	out = escapeRe.ReplaceAllString(out, "$1")

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "> ")
		lines[i] = line
	}
	out = strings.Join(lines, "\n")
	out = blankRunsRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
