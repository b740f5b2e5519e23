package keywords

// Keyword is a ranked term extracted from article text.
type Keyword struct {
	Term   string
	Weight int
}

// Analyzer ranks the salient terms of a text, heaviest first. Implementations
// never fail; unanalyzable input yields an empty result.
type Analyzer interface {
	Analyze(text string) []Keyword
}
