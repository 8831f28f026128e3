package util

import (
	"regexp"
	"strings"
	"time"
)

var nonWordChars = regexp.MustCompile(`[^\w-]`)

// SanitizeFilename builds a filesystem-safe filename from the first line of
// text: non-word characters become underscores one-for-one, the name part is
// truncated to 50 characters, and a timestamp suffix keeps names unique.
// Pure function of (text, defaultName, now).
func SanitizeFilename(text, defaultName string, now time.Time) string {
	namePart := defaultName
	if text != "" {
		firstLine := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
		if firstLine != "" {
			namePart = firstLine
		}
	}
	safeName := nonWordChars.ReplaceAllString(namePart, "_")
	if len(safeName) > 50 {
		safeName = safeName[:50]
	}
	return safeName + "_" + now.Format("20060102_1504")
}
