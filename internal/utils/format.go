package utils

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatCount formats an integer with comma separators
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatInts renders a list of ints as "3,4,5".
func FormatInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

// ParseInts parses "3,4 5" style lists. Commas and spaces both separate.
func ParseInts(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
