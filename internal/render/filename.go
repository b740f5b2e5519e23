package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danila-permogorskii/lexsplit/internal/segment"
)

// maxFilenameRunes caps the whole filename, extension included.
const maxFilenameRunes = 200

// Filename builds the deterministic output name for one article: document
// stem, structural identifiers outermost first, the article's descriptive
// title, then up to two keywords, joined with underscores. Empty parts are
// skipped.
func Filename(docName string, a Annotated) string {
	parts := make([]string, 0, 8)
	parts = append(parts, sanitize(docName, 40))
	for _, anc := range a.Ancestors {
		parts = append(parts, structureID(anc))
	}
	parts = append(parts, structureID(a.Node))
	parts = append(parts, sanitize(a.Node.Title, 50))

	if len(a.Keywords) > 0 {
		kws := a.Keywords
		if len(kws) > 2 {
			kws = kws[:2]
		}
		seg := make([]string, 0, len(kws))
		for _, k := range kws {
			if s := sanitize(k, 20); s != "" {
				seg = append(seg, s)
			}
		}
		parts = append(parts, strings.Join(seg, "_"))
	}

	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	name := strings.Join(kept, "_")
	return capRunes(name, maxFilenameRunes-len(".md")) + ".md"
}

// FallbackFilename is used when writing under the regular name fails,
// keeping the article addressable by position.
func FallbackFilename(docName string, i int) string {
	return fmt.Sprintf("%s_Article_%d.md", sanitize(docName, 40), i)
}

// structureID renders a node's structural identifier, e.g. "Статья_12.5".
// Synthetic nodes have no label and yield nothing.
func structureID(n *segment.Node) string {
	if n.Label == "" || n.Number == "" {
		return ""
	}
	return sanitize(n.Label+" "+n.Number, 50)
}

// sanitize strips filesystem-hostile characters, trims, maps spaces to
// underscores, and caps the result at max runes.
func sanitize(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
		default:
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(b.String())
	return capRunes(strings.ReplaceAll(cleaned, " ", "_"), max)
}

func capRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// NameSet hands out collision-free filenames within one output set.
// Duplicates get numeric suffixes in claim order, so identical runs yield
// identical names.
type NameSet struct {
	used map[string]bool
}

func NewNameSet() *NameSet {
	return &NameSet{used: make(map[string]bool)}
}

// Claim reserves name, appending _2, _3, ... before the extension when the
// plain name is already taken.
func (s *NameSet) Claim(name string) string {
	if !s.used[name] {
		s.used[name] = true
		return name
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 2; ; i++ {
		cand := fmt.Sprintf("%s_%d%s", base, i, ext)
		if !s.used[cand] {
			s.used[cand] = true
			return cand
		}
	}
}
