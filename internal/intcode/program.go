package intcode

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseProgram parses comma separated signed decimal words. Whitespace around
// the text and around each word is ignored.
func ParseProgram(text string) ([]int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty program", ErrMalformedProgram)
	}

	fields := strings.Split(text, ",")
	words := make([]int64, len(fields))
	for i, f := range fields {
		w, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: word %d %q: %w", ErrMalformedProgram, i, f, err)
		}
		words[i] = w
	}
	return words, nil
}

// FormatProgram is the inverse of ParseProgram
func FormatProgram(words []int64) string {
	var sb strings.Builder
	for i, w := range words {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(w, 10))
	}
	return sb.String()
}
