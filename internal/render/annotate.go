package render

import (
	"github.com/danila-permogorskii/lexsplit/internal/keywords"
	"github.com/danila-permogorskii/lexsplit/internal/segment"
)

// DefaultMaxKeywords is the number of keywords kept per article.
const DefaultMaxKeywords = 5

// Annotated pairs an article with its extracted keywords and topic. The
// underlying node is shared, never mutated; annotation produces a new
// value.
type Annotated struct {
	segment.Article
	Keywords []string
	Topic    string
}

// Annotate selects the first k ranked terms as keywords and the heaviest
// term as the topic. An empty ranking yields no keywords and an empty
// topic; annotation never fails.
func Annotate(a segment.Article, ranked []keywords.Keyword, k int) Annotated {
	if k <= 0 {
		k = DefaultMaxKeywords
	}
	ann := Annotated{Article: a}
	for _, kw := range ranked {
		if len(ann.Keywords) >= k {
			break
		}
		ann.Keywords = append(ann.Keywords, kw.Term)
	}
	if len(ann.Keywords) > 0 {
		ann.Topic = ann.Keywords[0]
	}
	return ann
}
