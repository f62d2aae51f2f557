// Package archive is the on-disk source of truth for downloaded
// chapters: one UTF-8 text file per chapter under the novel's directory,
// named with a zero-padded sequence prefix so resume state can be
// derived by a directory scan.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"novelgrab/internal/sanitize"
	"novelgrab/internal/sites"
)

const (
	maxTitleLen = 80
	maxPathLen  = 240
)

var seqPrefix = regexp.MustCompile(`^(\d+)_`)

type Store struct {
	Root string
}

func NewStore(root string) *Store {
	if root == "" {
		root = "chapters"
	}
	return &Store{Root: root}
}

func (s *Store) NovelDir(slug string) string {
	return filepath.Join(s.Root, slug)
}

// Latest returns the resume anchor for a novel: the highest sequence
// number reachable contiguously from 1. Externally introduced gaps are
// not preserved — the next run restarts at the first missing number.
func (s *Store) Latest(slug string) (int, error) {
	numbers, err := s.numbers(slug)
	if err != nil {
		return 0, err
	}
	latest := 0
	for numbers[latest+1] {
		latest++
	}
	return latest, nil
}

func (s *Store) numbers(slug string) (map[int]bool, error) {
	entries, err := os.ReadDir(s.NovelDir(slug))
	if os.IsNotExist(err) {
		return map[int]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan archive: %w", err)
	}
	numbers := map[int]bool{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		m := seqPrefix.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			numbers[n] = true
		}
	}
	return numbers, nil
}

// Save writes a chapter as <slug>/<NNN>_<sanitized title>.txt with the
// raw title on the first line. Re-saving a sequence number replaces the
// previous file even when the title changed.
func (s *Store) Save(slug string, ch sites.Chapter) (string, error) {
	dir := s.NovelDir(slug)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create novel dir: %w", err)
	}

	name := fmt.Sprintf("%03d_%s.txt", ch.Number, sanitize.Clean(ch.Title, maxTitleLen))
	path := filepath.Join(dir, name)
	if len(path) > maxPathLen {
		path = filepath.Join(dir, fmt.Sprintf("%03d_Chapter_%d.txt", ch.Number, ch.Number))
	}

	if err := s.removeOthers(dir, ch.Number, filepath.Base(path)); err != nil {
		return "", err
	}

	body := ch.Title + "\n\n" + ch.Body
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		return "", fmt.Errorf("write chapter %d: %w", ch.Number, err)
	}
	return path, nil
}

// removeOthers drops stale files carrying the same sequence number under
// a different title, so an overwrite never leaves duplicates behind.
func (s *Store) removeOthers(dir string, number int, keep string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scan archive: %w", err)
	}
	prefix := fmt.Sprintf("%03d_", number)
	for _, e := range entries {
		if e.IsDir() || e.Name() == keep {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) && strings.HasSuffix(e.Name(), ".txt") {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return fmt.Errorf("replace chapter %d: %w", number, err)
			}
		}
	}
	return nil
}

type Stored struct {
	Number int
	Path   string
}

// List returns the archived chapters for a novel, sorted by number.
func (s *Store) List(slug string) ([]Stored, error) {
	entries, err := os.ReadDir(s.NovelDir(slug))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan archive: %w", err)
	}

	out := []Stored{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		m := seqPrefix.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, Stored{Number: n, Path: filepath.Join(s.NovelDir(slug), e.Name())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// Novels lists the slugs that have at least one archived chapter.
func (s *Store) Novels() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan archive root: %w", err)
	}
	out := []string{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		stored, err := s.List(e.Name())
		if err != nil {
			return nil, err
		}
		if len(stored) > 0 {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// Read splits a stored chapter back into title and body.
func (s *Store) Read(st Stored) (string, string, error) {
	data, err := os.ReadFile(st.Path)
	if err != nil {
		return "", "", fmt.Errorf("read chapter %d: %w", st.Number, err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	title, body, found := strings.Cut(text, "\n\n")
	if !found {
		return fmt.Sprintf("Chapter %d", st.Number), strings.TrimSpace(text), nil
	}
	return strings.TrimSpace(title), strings.TrimSpace(body), nil
}
