package segment

import (
	"regexp"
	"strings"
)

// Rule detects one heading level. The pattern anchors at line start and
// captures the heading number and the descriptive remainder.
type Rule struct {
	Level   int
	Label   string
	Pattern *regexp.Regexp
}

// Grammar is an ordered list of heading rules, outermost level first.
// Match tries rules in order; the first hit wins.
type Grammar []Rule

// Heading is the result of matching one line against a grammar.
type Heading struct {
	Level  int
	Label  string
	Number string
	Title  string // descriptive remainder after label and number
}

// DefaultGrammar recognizes the four structural levels of Russian legal
// texts: Раздел (section), Глава (chapter), § (paragraph), Статья (article).
func DefaultGrammar() Grammar {
	return Grammar{
		{Level: 1, Label: "Раздел", Pattern: regexp.MustCompile(`(?i)^\s*Раздел\s+(\d+)\.?\s*(.*)$`)},
		{Level: 2, Label: "Глава", Pattern: regexp.MustCompile(`(?i)^\s*Глава\s+(\d+)\.?\s*(.*)$`)},
		{Level: 3, Label: "§", Pattern: regexp.MustCompile(`^\s*§\s+(\d+)\.?\s*(.*)$`)},
		{Level: 4, Label: "Статья", Pattern: regexp.MustCompile(`(?i)^\s*Статья\s*(\d+(?:\.\d+)*)\.?\s*(.*)$`)},
	}
}

// Match returns the first rule matching line. ok is false when no rule
// matches.
func (g Grammar) Match(line string) (Heading, bool) {
	for _, r := range g {
		m := r.Pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return Heading{
			Level:  r.Level,
			Label:  r.Label,
			Number: m[1],
			Title:  strings.TrimSpace(m[2]),
		}, true
	}
	return Heading{}, false
}

// MaxLevel returns the deepest level in the grammar, the article level.
func (g Grammar) MaxLevel() int {
	max := 0
	for _, r := range g {
		if r.Level > max {
			max = r.Level
		}
	}
	return max
}
