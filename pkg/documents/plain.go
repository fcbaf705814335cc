package documents

import (
	"fmt"
	"os"
	"strings"
)

// PlainExtractor reads UTF-8 text files; invalid bytes become U+FFFD.
type PlainExtractor struct{}

func (e *PlainExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
