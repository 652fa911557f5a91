package scan

import (
	"bytes"
	"os"
	"unicode/utf8"
)

// sniffBytes is how much of a file gets read to decide text vs binary.
const sniffBytes = 1024

// IsTextFile guesses whether a file holds text by reading a small prefix.
// A NUL byte or invalid UTF-8 marks the file as binary. Unreadable files
// count as binary.
func IsTextFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, sniffBytes)
	n, _ := f.Read(buf)
	snippet := buf[:n]

	if bytes.IndexByte(snippet, 0) >= 0 {
		return false
	}

	// The prefix may cut a multi-byte rune; drop at most a rune's worth
	// of trailing bytes before validating.
	if n == sniffBytes {
		for i := 0; i < utf8.UTFMax-1 && len(snippet) > 0 && !utf8.Valid(snippet); i++ {
			snippet = snippet[:len(snippet)-1]
		}
	}

	return utf8.Valid(snippet)
}
