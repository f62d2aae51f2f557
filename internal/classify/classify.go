// Package classify tags chapter lines with their structural role so the
// PDF layout can style narration, dialog, system messages and headings
// differently. Classification is a pure function of line content.
package classify

import (
	"regexp"
	"strings"
)

type Role int

const (
	Narration Role = iota
	Dialog
	System
	Heading
)

func (r Role) String() string {
	switch r {
	case Dialog:
		return "dialog"
	case System:
		return "system"
	case Heading:
		return "heading"
	default:
		return "narration"
	}
}

type Span struct {
	Text string
	Role Role
}

type bracketPair struct {
	open, close rune
}

var defaultBrackets = []bracketPair{
	{'【', '】'},
	{'[', ']'},
	{'『', '』'},
}

var quotePairs = map[rune]rune{
	'"': '"',
	'“': '”',
	'‘': '’',
	'\'': '\'',
}

// Allows an optional volume prefix and an optional leading quote, so a
// quoted chapter heading still ranks as a heading.
var headingRe = regexp.MustCompile(`(?i)^["“”]?\s*(?:vol(?:ume)?\.?\s*\d+\s*[,:\-]?\s*)?chapter\s+\d+`)

var attributionRe = regexp.MustCompile(`(?i)\b(said|asked)\b`)

type Classifier struct {
	brackets []bracketPair
}

type Option func(*Classifier)

// WithBrackets replaces the bracket pairs recognized as system messages.
func WithBrackets(pairs ...[2]rune) Option {
	return func(c *Classifier) {
		c.brackets = make([]bracketPair, 0, len(pairs))
		for _, p := range pairs {
			c.brackets = append(c.brackets, bracketPair{open: p[0], close: p[1]})
		}
	}
}

func New(opts ...Option) *Classifier {
	c := &Classifier{brackets: defaultBrackets}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify maps each non-blank line to a span, preserving order. Blank
// lines are collapsed away.
func (c *Classifier) Classify(lines []string) []Span {
	spans := make([]Span, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		spans = append(spans, Span{Text: line, Role: c.classifyLine(line)})
	}
	return spans
}

// ClassifyText splits a chapter body into lines and classifies them.
func (c *Classifier) ClassifyText(body string) []Span {
	return c.Classify(strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n"))
}

// First match wins: heading, then system, then dialog, then narration.
func (c *Classifier) classifyLine(line string) Role {
	switch {
	case headingRe.MatchString(line):
		return Heading
	case c.isSystem(line):
		return System
	case isDialog(line):
		return Dialog
	default:
		return Narration
	}
}

func (c *Classifier) isSystem(line string) bool {
	runes := []rune(line)
	if len(runes) < 2 {
		return false
	}
	for _, p := range c.brackets {
		if runes[0] == p.open && runes[len(runes)-1] == p.close {
			return true
		}
	}
	return false
}

func isDialog(line string) bool {
	runes := []rune(line)
	if len(runes) >= 2 {
		if closing, ok := quotePairs[runes[0]]; ok && runes[len(runes)-1] == closing {
			return true
		}
	}
	if strings.Count(line, `"`) >= 2 {
		return true
	}
	if hasCurlyQuotePair(line) {
		return true
	}
	// Attribution lines like `"Fine," she said.` keep dialog styling
	// even when the closing quote sits mid-line.
	if strings.ContainsAny(line, `"“”`) && attributionRe.MatchString(line) {
		return true
	}
	return false
}

func hasCurlyQuotePair(line string) bool {
	return strings.ContainsRune(line, '“') && strings.ContainsRune(line, '”')
}
