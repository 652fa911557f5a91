package ignore

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Matcher checks repository-relative paths against a list of ignore patterns.
type Matcher struct {
	patterns []compiledPattern
}

// NewMatcher compiles the given glob patterns into a Matcher.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		m.patterns = append(m.patterns, compiledPattern{pattern: pattern, glob: g})
	}
	return m, nil
}

// Len returns the number of patterns held by the matcher.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// Match reports whether relPath matches any pattern, and which one.
// relPath must use forward slashes.
func (m *Matcher) Match(relPath string) (bool, string) {
	for _, cp := range m.patterns {
		if cp.glob.Match(relPath) {
			return true, cp.pattern
		}
	}

	// A directory should also match patterns written with a /** suffix,
	// so "node_modules" is skipped when the pattern is "node_modules/**".
	withSuffix := relPath + "/**"
	for _, cp := range m.patterns {
		if cp.glob.Match(withSuffix) {
			return true, cp.pattern
		}
	}

	// Root-level files have no slash; let "**/*.md" style patterns match
	// them the way users expect.
	if !strings.Contains(relPath, "/") {
		for _, cp := range m.patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(relPath) {
					return true, cp.pattern
				}
			}
		}
	}

	return false, ""
}

// ParseFile reads an ignore file line by line, skipping blank lines and
// comment lines starting with '#'. A missing file yields no patterns.
func ParseFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ignore file: %w", err)
	}
	return patterns, nil
}

// Load parses an ignore file and compiles its patterns in one step.
func Load(path string) (*Matcher, error) {
	patterns, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return NewMatcher(patterns)
}
