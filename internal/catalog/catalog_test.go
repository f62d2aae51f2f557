package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_SkipsCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "novel_urls.txt")
	content := `# my novels

https://katreadingcafe.com/series/my-great-novel/

# another comment
https://novelbin.me/novel-book/shadow-slave
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	entries, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Site != SiteKatReadingCafe {
		t.Errorf("entry 0 site = %s", entries[0].Site)
	}
	if entries[1].Site != SiteNovelBin {
		t.Errorf("entry 1 site = %s", entries[1].Site)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing catalog")
	}
}

func TestInfer(t *testing.T) {
	cases := []struct {
		url       string
		wantSite  Site
		wantTitle string
		wantSlug  string
	}{
		{
			url:       "https://katreadingcafe.com/series/my-great-novel/",
			wantSite:  SiteKatReadingCafe,
			wantTitle: "My Great Novel",
			wantSlug:  "my-great-novel",
		},
		{
			url:       "https://novelbin.me/novel-book/shadow-slave",
			wantSite:  SiteNovelBin,
			wantTitle: "Shadow Slave",
			wantSlug:  "shadow-slave",
		},
		{
			url:       "https://example.com/books/some_story",
			wantSite:  SiteUnknown,
			wantTitle: "Some Story",
			wantSlug:  "some-story",
		},
	}
	for _, tc := range cases {
		got := Infer(tc.url)
		if got.Site != tc.wantSite {
			t.Errorf("Infer(%q).Site = %s, want %s", tc.url, got.Site, tc.wantSite)
		}
		if got.Title != tc.wantTitle {
			t.Errorf("Infer(%q).Title = %q, want %q", tc.url, got.Title, tc.wantTitle)
		}
		if got.Slug != tc.wantSlug {
			t.Errorf("Infer(%q).Slug = %q, want %q", tc.url, got.Slug, tc.wantSlug)
		}
		if got.URL != tc.url {
			t.Errorf("Infer(%q).URL = %q", tc.url, got.URL)
		}
	}
}
