package logger

import (
	"fmt"
	"strings"
)

// MaskAccountNumber redacts a bank account number for logging, keeping only
// the last four digits.
func MaskAccountNumber(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return "<empty>"
	}
	if len(number) <= 4 {
		return strings.Repeat("*", len(number))
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}

// SanitizeDescription redacts a free-text description but preserves length
// information for debugging.
func SanitizeDescription(desc string) string {
	if desc == "" {
		return "<empty>"
	}
	return fmt.Sprintf("<redacted: %d words, %d chars>", len(strings.Fields(desc)), len(desc))
}
