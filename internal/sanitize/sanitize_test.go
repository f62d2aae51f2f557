package sanitize

import (
	"strings"
	"testing"
)

func TestClean_RemovesIllegalCharacters(t *testing.T) {
	got := Clean(`Chapter 12: The <Fall?> of "Heroes" #end`, 80)
	for _, r := range got {
		if strings.ContainsRune(illegalChars, r) {
			t.Fatalf("illegal rune %q in %q", r, got)
		}
	}
	if got != "Chapter 12 The Fall of Heroes end" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestClean_CollapsesWhitespace(t *testing.T) {
	got := Clean("A \t  Long\n\nTitle", 80)
	if got != "A Long Title" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestClean_Deterministic(t *testing.T) {
	inputs := []string{"Chapter 1", "", `\\\///`, strings.Repeat("x", 400)}
	for _, in := range inputs {
		a := Clean(in, 80)
		b := Clean(in, 80)
		if a != b {
			t.Fatalf("non-deterministic output for %q: %q vs %q", in, a, b)
		}
	}
}

func TestClean_EmptyAndAllIllegal(t *testing.T) {
	for _, in := range []string{"", `<>:"/\|?*#`, "\x00\x01\x02"} {
		got := Clean(in, 80)
		if got == "" {
			t.Fatalf("empty output for %q", in)
		}
		if strings.ContainsAny(got, illegalChars) {
			t.Fatalf("illegal characters in fallback %q", got)
		}
	}
}

func TestClean_AllIllegalInputsDiffer(t *testing.T) {
	a := Clean("???", 80)
	b := Clean("***", 80)
	if a == b {
		t.Fatalf("distinct inputs mapped to same fallback %q", a)
	}
}

func TestClean_TruncatesAtWordBoundary(t *testing.T) {
	title := "The quick brown fox jumps over the lazy dog"
	got := Clean(title, 20)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncation marker, got %q", got)
	}
	body := strings.TrimSuffix(got, "...")
	if len([]rune(body)) > 20 {
		t.Fatalf("truncated body too long: %q", got)
	}
	if strings.HasSuffix(body, " ") {
		t.Fatalf("trailing space before marker: %q", got)
	}
	if !strings.HasPrefix(title, body) {
		t.Fatalf("truncation altered text: %q", got)
	}
}

func TestClean_LongInput(t *testing.T) {
	got := Clean(strings.Repeat("word ", 100), 80)
	if len([]rune(got)) > 83 {
		t.Fatalf("result exceeds limit: %d runes", len([]rune(got)))
	}
}

func TestSlug(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"My Novel Title", "my-novel-title"},
		{"the-beginning-after-the-end", "the-beginning-after-the-end"},
		{"  Spaces   Everywhere  ", "spaces-everywhere"},
		{"Mixed/Case:Name", "mixed-case-name"},
	}
	for _, tc := range cases {
		if got := Slug(tc.in); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlug_EmptyFallsBack(t *testing.T) {
	if got := Slug("!!!"); got == "" {
		t.Fatal("expected non-empty slug")
	}
}
