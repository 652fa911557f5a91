package scan

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Extract reads the files named by ids out of the index mapping and writes
// them into one flat artifact at outputPath, each section preceded by a
// numbered header. Unknown IDs and files that no longer sniff as text are
// skipped with a warning. Returns the approximate token count of the
// combined output.
func Extract(repoRoot string, idToPath map[int]string, ids []int, outputPath string, onFile func(relPath string)) (int, error) {
	var combined strings.Builder

	for _, id := range ids {
		relPath, ok := idToPath[id]
		if !ok {
			log.Printf("Warning: file ID %d not found in index, skipping", id)
			continue
		}

		fullPath := filepath.Join(repoRoot, filepath.FromSlash(relPath))
		if !IsTextFile(fullPath) {
			log.Printf("Warning: file %s is not a text file, skipping", relPath)
			continue
		}

		content, err := os.ReadFile(fullPath)
		if err != nil {
			log.Printf("Warning: could not read file %s: %v", relPath, err)
			continue
		}

		fmt.Fprintf(&combined, "===== FILE ID %d : %s =====\n%s\n", id, relPath, content)
		if onFile != nil {
			onFile(relPath)
		}
	}

	output := combined.String()
	if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
		return 0, fmt.Errorf("failed to write output file: %w", err)
	}
	return ApproxTokenCount(output), nil
}
