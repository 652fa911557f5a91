package scan

import "strings"

// ApproxTokenCount estimates how many tokens a downstream model would see
// for the given text. Whitespace-separated words times 1.2 is a rough but
// serviceable heuristic.
func ApproxTokenCount(text string) int {
	words := strings.Fields(text)
	return int(float64(len(words)) * 1.2)
}
