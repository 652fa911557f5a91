package scan

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// IndexEntry is one line of the scan index: a sequential ID and the
// repository-relative path it names.
type IndexEntry struct {
	ID   int
	Path string
}

// WriteIndex writes entries as "ID<TAB>path" lines.
func WriteIndex(path string, entries []IndexEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\n", e.ID, e.Path)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}
	return nil
}

// ReadIndex parses an index file back into an ID → path mapping.
// Malformed lines are skipped.
func ReadIndex(path string) (map[int]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index file: %w", err)
	}
	defer f.Close()

	idToPath := make(map[int]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		idToPath[id] = parts[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}
	return idToPath, nil
}

// ParseSelection expands a selection string like "1,2,5,7-15,30" into file
// IDs. Reversed ranges ("15-7") are normalized to ascending order and
// malformed parts are dropped.
func ParseSelection(selection string) []int {
	var ids []int
	for _, part := range strings.Split(selection, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "-") {
			bounds := strings.SplitN(part, "-", 2)
			start, err1 := strconv.Atoi(strings.TrimSpace(bounds[0]))
			end, err2 := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err1 != nil || err2 != nil {
				continue
			}
			if start > end {
				start, end = end, start
			}
			for id := start; id <= end; id++ {
				ids = append(ids, id)
			}
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// AllIDs returns every ID in the mapping in ascending order.
func AllIDs(idToPath map[int]string) []int {
	ids := make([]int, 0, len(idToPath))
	for id := range idToPath {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
