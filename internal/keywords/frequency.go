package keywords

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/russian"
	"golang.org/x/text/unicode/norm"
)

// minTokenRunes drops abbreviations and particles the stopword list misses.
const minTokenRunes = 3

// Frequency ranks terms by stem-grouped occurrence count, so inflected
// forms of one word count toward a single candidate. The display form of a
// candidate is its most frequent surface form.
type Frequency struct{}

type candidate struct {
	count int
	first int // rank of first occurrence, tiebreaker for equal counts
	forms map[string]int
	order []string // surface forms in first-seen order
}

func (Frequency) Analyze(text string) []Keyword {
	index := make(map[string]*candidate)
	var cands []*candidate

	pos := 0
	for _, tok := range tokenize(norm.NFC.String(text)) {
		if utf8.RuneCountInString(tok) < minTokenRunes || stopwords[tok] {
			continue
		}
		stem := stemToken(tok)
		c, ok := index[stem]
		if !ok {
			c = &candidate{first: pos, forms: make(map[string]int)}
			index[stem] = c
			cands = append(cands, c)
		}
		if c.forms[tok] == 0 {
			c.order = append(c.order, tok)
		}
		c.forms[tok]++
		c.count++
		pos++
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].count != cands[j].count {
			return cands[i].count > cands[j].count
		}
		return cands[i].first < cands[j].first
	})

	out := make([]Keyword, 0, len(cands))
	for _, c := range cands {
		out = append(out, Keyword{Term: c.display(), Weight: c.count})
	}
	return out
}

// display picks the most frequent surface form; ties go to the form seen
// first, keeping output deterministic.
func (c *candidate) display() string {
	best := ""
	bestN := 0
	for _, form := range c.order {
		if n := c.forms[form]; n > bestN {
			best, bestN = form, n
		}
	}
	return best
}

// tokenize splits text into lowercase letter runs, folding ё to е so the
// two spellings group together.
func tokenize(text string) []string {
	var tokens []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range text {
		if unicode.IsLetter(r) {
			r = unicode.ToLower(r)
			if r == 'ё' {
				r = 'е'
			}
			cur = append(cur, r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

func stemToken(tok string) string {
	if isCyrillic(tok) {
		return russian.Stem(tok, false)
	}
	return english.Stem(tok, false)
}

func isCyrillic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}
