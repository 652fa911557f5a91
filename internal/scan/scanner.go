package scan

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/flatsrc/flatsrc/internal/ignore"
)

// Scanner walks a repository tree and builds an index of its text files.
type Scanner struct {
	repoRoot string
	ignore   *ignore.Matcher

	// CountTokens reads every indexed file to accumulate a rough token
	// estimate across the repository.
	CountTokens bool

	// OnFile, when set, is called with each indexed relative path.
	OnFile func(relPath string)
}

// Result holds the outcome of one repository scan.
type Result struct {
	Entries     []IndexEntry
	TotalTokens int
}

// NewScanner creates a scanner rooted at repoRoot. A nil matcher means
// nothing is ignored.
func NewScanner(repoRoot string, matcher *ignore.Matcher) *Scanner {
	if matcher == nil {
		matcher, _ = ignore.NewMatcher(nil)
	}
	return &Scanner{repoRoot: repoRoot, ignore: matcher}
}

// Scan walks the tree, skipping ignored directories and files, and
// assigns sequential IDs to every text file found. Binary and unreadable
// files are skipped with a warning.
func (s *Scanner) Scan() (*Result, error) {
	res := &Result{}
	nextID := 1

	err := filepath.WalkDir(s.repoRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			log.Printf("Warning: skipping unreadable path %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == s.repoRoot {
			return nil
		}

		relPath, err := filepath.Rel(s.repoRoot, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if ignored, pattern := s.ignore.Match(relPath); ignored {
				log.Printf("Skipping directory %q due to ignore pattern %q", relPath, pattern)
				return fs.SkipDir
			}
			return nil
		}

		if ignored, pattern := s.ignore.Match(relPath); ignored {
			log.Printf("Skipping file %q due to ignore pattern %q", relPath, pattern)
			return nil
		}

		if !IsTextFile(path) {
			log.Printf("Warning: skipping binary or unreadable file: %s", relPath)
			return nil
		}

		if s.CountTokens {
			content, err := os.ReadFile(path)
			if err != nil {
				log.Printf("Warning: could not read file %s: %v", relPath, err)
				return nil
			}
			res.TotalTokens += ApproxTokenCount(string(content))
		}

		res.Entries = append(res.Entries, IndexEntry{ID: nextID, Path: relPath})
		nextID++
		if s.OnFile != nil {
			s.OnFile(relPath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk repository: %w", err)
	}
	return res, nil
}
