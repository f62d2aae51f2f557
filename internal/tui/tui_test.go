package tui

import (
	"testing"

	"novelgrab/internal/catalog"
)

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{" 50 ", 50, true},
		{"0", 0, false},
		{"51", 0, false},
		{"-3", 0, false},
		{"ten", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := parseCount(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("parseCount(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("parseCount(%q) accepted", tc.in)
		}
	}
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt("7"); err != nil {
		t.Errorf("validatePositiveInt(7) = %v", err)
	}
	for _, s := range []string{"0", "-1", "x", ""} {
		if err := validatePositiveInt(s); err == nil {
			t.Errorf("validatePositiveInt(%q) accepted", s)
		}
	}
}

func TestNovelOptionsLabels(t *testing.T) {
	entries := []catalog.Entry{
		{Title: "Dungeon Diver", Slug: "dungeon-diver", Site: catalog.SiteKatReadingCafe},
		{Title: "Mystery Novel", Slug: "mystery-novel", Site: catalog.SiteUnknown},
	}
	opts := novelOptions(entries)
	if len(opts) != 2 {
		t.Fatalf("got %d options", len(opts))
	}
	if opts[0].Key != "Dungeon Diver (katreadingcafe)" || opts[0].Value != "dungeon-diver" {
		t.Errorf("option 0 = %q / %q", opts[0].Key, opts[0].Value)
	}
	if opts[1].Key != "Mystery Novel" {
		t.Errorf("option 1 = %q", opts[1].Key)
	}
}

func TestDownloadedOptionsUseDisplayTitles(t *testing.T) {
	opts := downloadedOptions([]string{"dungeon-diver"})
	if len(opts) != 1 || opts[0].Key != "Dungeon Diver" || opts[0].Value != "dungeon-diver" {
		t.Errorf("options = %v", opts)
	}
}

func TestBoolOr(t *testing.T) {
	v := false
	if boolOr(nil, true) != true {
		t.Error("nil should fall back to default")
	}
	if boolOr(&v, true) != false {
		t.Error("explicit value should win")
	}
}
