package fs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultIgnorePatterns are always applied regardless of config or .cdsignore.
var defaultIgnorePatterns = []string{IgnoreFileName}

// ignoreRule is a parsed glob with its polarity.
type ignoreRule struct {
	glob   string
	negate bool // "!glob" re-includes a name excluded by an earlier rule
}

// IgnoreMatcher decides which filenames in the monitored directory are not tracked.
// Rules are shell globs matched against the base name; later rules win.
type IgnoreMatcher struct {
	rules []ignoreRule
}

// NewIgnoreMatcher creates an IgnoreMatcher from raw pattern strings.
// Blank lines and lines starting with '#' are skipped. Patterns that
// filepath.Match rejects are dropped.
func NewIgnoreMatcher(rawPatterns []string) *IgnoreMatcher {
	var rules []ignoreRule
	for _, raw := range rawPatterns {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		rule := ignoreRule{glob: raw}
		if strings.HasPrefix(raw, "!") {
			rule = ignoreRule{glob: raw[1:], negate: true}
		}
		if _, err := filepath.Match(rule.glob, ""); err != nil {
			continue
		}
		rules = append(rules, rule)
	}
	return &IgnoreMatcher{rules: rules}
}

// Match reports whether name should be left out of the scan.
func (m *IgnoreMatcher) Match(name string) bool {
	base := filepath.Base(name)
	ignored := false
	for _, r := range m.rules {
		if ok, _ := filepath.Match(r.glob, base); ok {
			ignored = !r.negate
		}
	}
	return ignored
}

// ParseIgnoreFile reads a .cdsignore file and returns the raw pattern strings.
// Returns nil and no error if the file does not exist.
func ParseIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		patterns = append(patterns, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return patterns, nil
}
