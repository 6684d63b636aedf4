// Package envfile implements the flat KEY=value configuration store and its
// reconciliation against a template: keys are upserted in place, comments
// and blank lines survive rewrites, and every save goes through an atomic
// temp-file replace.
package envfile

import (
	"fmt"
	"os"
	"strings"

	"adtsetup/pkg/fileops"
)

// line is one physical line of the store. Non-entry lines (comments,
// blanks, anything without a '=') keep their raw text verbatim.
type line struct {
	raw   string // verbatim text for non-entry lines
	key   string // empty for non-entry lines
	value string
}

func (l line) isEntry() bool { return l.key != "" }

// Store is an ordered, line-preserving view of a KEY=value file. Mutations
// happen in memory; Save rewrites the whole file atomically.
type Store struct {
	path  string
	lines []line
}

// LoadStore reads and parses the store at path.
func LoadStore(path string) (*Store, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}
	return parseStore(path, string(content)), nil
}

func parseStore(path, content string) *Store {
	s := &Store{path: path}

	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return s
	}

	for _, raw := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || !strings.Contains(trimmed, "=") {
			s.lines = append(s.lines, line{raw: raw})
			continue
		}

		key, value, _ := strings.Cut(trimmed, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			s.lines = append(s.lines, line{raw: raw})
			continue
		}
		s.lines = append(s.lines, line{key: key, value: strings.TrimSpace(value)})
	}
	return s
}

// Get returns the current value of key and whether the key is present.
func (s *Store) Get(key string) (string, bool) {
	for _, l := range s.lines {
		if l.key == key {
			return l.value, true
		}
	}
	return "", false
}

// Set upserts a key: an existing entry is replaced in place, preserving
// file order; a new key is appended at the end.
func (s *Store) Set(key, value string) {
	for i, l := range s.lines {
		if l.key == key {
			s.lines[i].value = value
			return
		}
	}
	s.lines = append(s.lines, line{key: key, value: value})
}

// Keys returns the entry keys in file order.
func (s *Store) Keys() []string {
	var keys []string
	for _, l := range s.lines {
		if l.isEntry() {
			keys = append(keys, l.key)
		}
	}
	return keys
}

// Render serializes the store back to its file form.
func (s *Store) Render() string {
	var b strings.Builder
	for _, l := range s.lines {
		if l.isEntry() {
			fmt.Fprintf(&b, "%s=%s\n", l.key, l.value)
		} else {
			b.WriteString(l.raw)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Save atomically rewrites the store file. Permissions are restrictive
// because the store holds credentials.
func (s *Store) Save() error {
	if err := fileops.AtomicWriteFile(s.path, []byte(s.Render()), 0600); err != nil {
		return fmt.Errorf("failed to save store: %w", err)
	}
	return nil
}
