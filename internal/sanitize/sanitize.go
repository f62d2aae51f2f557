// Package sanitize turns arbitrary chapter and novel titles into
// deterministic, filesystem-safe name components.
package sanitize

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

const illegalChars = `<>:"/\|?*#`

// Clean returns a filename-safe rendition of title, at most maxLen runes
// long (plus a "..." marker when truncated). Equal inputs always produce
// equal outputs. The result is never empty: titles that sanitize away to
// nothing fall back to a hash of the original input.
func Clean(title string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalChars, r) {
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, title)

	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if cleaned == "" {
		return hashName(title)
	}
	if maxLen > 0 {
		cleaned = truncate(cleaned, maxLen)
	}
	return cleaned
}

// Slug normalizes a novel name into a lowercase directory slug. It keeps
// letters, digits and hyphens and joins everything else with hyphens.
func Slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastHyphen := true
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return hashName(name)
	}
	return out
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	cut := string(runes[:maxLen])
	// Prefer breaking at the last word boundary, unless that would throw
	// away most of the text.
	if idx := strings.LastIndex(cut, " "); idx > maxLen/2 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ") + "..."
}

func hashName(s string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("untitled-%08x", h.Sum32())
}
