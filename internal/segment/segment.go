package segment

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxHeadingLen is the rune cutoff above which a line matching a
// heading rule is treated as body text instead.
const DefaultMaxHeadingLen = 200

// Node is one structural element of a legal document. Level 0 is the
// synthetic root. A node's body is the text between its heading line and
// the next heading; the descriptive remainder of the heading line itself
// is the first body line.
type Node struct {
	Level    int
	Label    string
	Number   string
	Title    string
	Heading  string // full heading line as it appeared
	Body     string
	Children []*Node
}

// Article is a leaf node paired with its structural ancestors, outermost
// first. The root is not included.
type Article struct {
	Node      *Node
	Ancestors []*Node
}

// Segmenter splits normalized text into a structural tree.
type Segmenter struct {
	Grammar       Grammar
	MaxHeadingLen int
}

// New returns a Segmenter, substituting defaults for a nil grammar or a
// non-positive heading cutoff.
func New(g Grammar, maxHeadingLen int) *Segmenter {
	if g == nil {
		g = DefaultGrammar()
	}
	if maxHeadingLen <= 0 {
		maxHeadingLen = DefaultMaxHeadingLen
	}
	return &Segmenter{Grammar: g, MaxHeadingLen: maxHeadingLen}
}

// Segment parses text into a tree rooted at a synthetic level-0 node.
// It never fails: empty input yields a bare root, and input with no
// recognizable heading yields a single synthetic "unstructured" article
// spanning the whole text.
func (s *Segmenter) Segment(text string) *Node {
	root := &Node{}
	if strings.TrimSpace(text) == "" {
		return root
	}

	stack := []*Node{root}
	var body strings.Builder

	appendLine := func(line string) {
		if body.Len() > 0 {
			body.WriteByte('\n')
		}
		body.WriteString(line)
	}
	flush := func() {
		top := stack[len(stack)-1]
		top.Body = strings.Trim(body.String(), "\n")
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		h, ok := s.Grammar.Match(line)
		if !ok || utf8.RuneCountInString(line) > s.MaxHeadingLen {
			// Body text, including lines that merely resemble a heading.
			appendLine(line)
			continue
		}

		flush()
		node := &Node{
			Level:   h.Level,
			Label:   h.Label,
			Number:  h.Number,
			Title:   h.Title,
			Heading: strings.TrimSpace(line),
		}
		// Pop to the nearest ancestor shallower than the new node. This
		// also handles level skips: an article directly under a section
		// attaches to that section.
		for len(stack) > 1 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)

		if h.Title != "" {
			appendLine(h.Title)
		}
	}
	flush()

	if len(root.Children) == 0 {
		// No heading matched anywhere: keep the content as one synthetic
		// article instead of dropping it.
		root.Children = []*Node{{
			Level:   s.Grammar.MaxLevel(),
			Title:   "unstructured",
			Heading: "unstructured",
			Body:    root.Body,
		}}
		root.Body = ""
	}

	return root
}

// Articles collects the article-level nodes of a segmented tree in
// document order, each with its ancestor chain.
func (s *Segmenter) Articles(root *Node) []Article {
	leafLevel := s.Grammar.MaxLevel()
	var out []Article
	var walk func(n *Node, ancestors []*Node)
	walk = func(n *Node, ancestors []*Node) {
		for _, c := range n.Children {
			if c.Level == leafLevel {
				chain := make([]*Node, len(ancestors))
				copy(chain, ancestors)
				out = append(out, Article{Node: c, Ancestors: chain})
				continue
			}
			walk(c, append(ancestors, c))
		}
	}
	walk(root, nil)
	return out
}
