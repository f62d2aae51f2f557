package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRoundTrip(t *testing.T) {
	headless := false
	s := Settings{
		CatalogPath:     "novel_urls.txt",
		ChaptersDir:     "chapters",
		PDFDir:          "pdf_novels",
		TimeoutSeconds:  30,
		UserAgent:       "test-agent",
		Headless:        &headless,
		MinDelaySeconds: 10,
		MaxDelaySeconds: 20,
	}

	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CatalogPath != s.CatalogPath || got.TimeoutSeconds != s.TimeoutSeconds {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Headless == nil || *got.Headless {
		t.Fatalf("expected headless=false to survive round trip")
	}
	if got.MinDelaySeconds != 10 || got.MaxDelaySeconds != 20 {
		t.Fatalf("delay bounds mismatch: %+v", got)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("timeout_seconds: 90\n"), 0600); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TimeoutSeconds != 90 {
		t.Fatalf("timeout = %d", got.TimeoutSeconds)
	}
	if got.Headless != nil {
		t.Fatal("expected unset headless to stay nil")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(":\t{bad"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error")
	}
}
