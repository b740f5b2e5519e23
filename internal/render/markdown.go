package render

import (
	"fmt"
	"strings"
)

// Markdown renders one annotated article in the layout downstream corpus
// tooling consumes: article heading first, then ancestor headings from the
// outermost level down, then the body, then keyword and topic blocks.
// Empty blocks are omitted.
func Markdown(a Annotated) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", a.Node.Heading)
	for _, anc := range a.Ancestors {
		fmt.Fprintf(&b, "%s %s\n\n", strings.Repeat("#", anc.Level+1), anc.Heading)
	}
	if a.Node.Body != "" {
		b.WriteString(a.Node.Body)
		b.WriteString("\n\n")
	}
	if len(a.Keywords) > 0 {
		fmt.Fprintf(&b, "## Keywords\n%s\n\n", strings.Join(a.Keywords, ", "))
	}
	if a.Topic != "" {
		fmt.Fprintf(&b, "## Topic\n%s\n", a.Topic)
	}
	return b.String()
}
