package deps

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// WriteFlat concatenates the given files into one artifact at outputPath,
// each preceded by a "===== FILE: relpath =====" header. Image files are
// noted with a placeholder instead of their binary content. Unreadable
// files warn and are skipped.
func WriteFlat(files []string, repoRoot, outputPath string) error {
	var combined strings.Builder

	for _, path := range files {
		relPath, err := filepath.Rel(repoRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if IsImage(path) {
			fmt.Fprintf(&combined, "===== FILE: %s =====\n[Image file skipped]\n\n", relPath)
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: could not open file %s: %v", relPath, err)
			continue
		}
		fmt.Fprintf(&combined, "===== FILE: %s =====\n%s\n", relPath, content)
	}

	if err := os.WriteFile(outputPath, []byte(combined.String()), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
