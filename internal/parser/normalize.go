package parser

import "strings"

// Normalize cleans decoder output before segmentation: line endings and
// form feeds become LF, non-breaking spaces become plain spaces, zero-width
// characters are dropped, trailing whitespace is trimmed per line, and runs
// of blank lines collapse to a single blank line.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")

	var b strings.Builder
	b.Grow(len(text))
	blankRun := 0
	for i, line := range strings.Split(text, "\n") {
		line = strings.Map(normalizeRune, line)
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blankRun++
			if blankRun > 1 {
				continue
			}
		} else {
			blankRun = 0
		}
		if i > 0 && b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return strings.Trim(b.String(), "\n")
}

func normalizeRune(r rune) rune {
	switch r {
	case ' ', ' ', ' ': // non-breaking spaces
		return ' '
	case '​', '﻿': // zero-width space, BOM
		return -1
	}
	return r
}
