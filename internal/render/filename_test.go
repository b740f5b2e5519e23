package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/danila-permogorskii/lexsplit/internal/segment"
)

func TestFilename_Parts(t *testing.T) {
	section := &segment.Node{Level: 1, Label: "Раздел", Number: "1", Heading: "Раздел 1."}
	chapter := &segment.Node{Level: 2, Label: "Глава", Number: "2", Heading: "Глава 2."}
	a := article("Статья 5. Права", "Права", "x", section, chapter)
	a.Node.Number = "5"
	ann := Annotated{Article: a, Keywords: []string{"договор", "срок", "суд"}}

	got := Filename("закон", ann)
	want := "закон_Раздел_1_Глава_2_Статья_5_Права_договор_срок.md"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFilename_SkipsEmptyParts(t *testing.T) {
	a := segment.Article{Node: &segment.Node{Level: 4, Title: "unstructured", Heading: "unstructured"}}
	ann := Annotated{Article: a}

	got := Filename("doc", ann)
	if got != "doc_unstructured.md" {
		t.Errorf("expected %q, got %q", "doc_unstructured.md", got)
	}
}

func TestFilename_SanitizesHostileRunes(t *testing.T) {
	a := article("Статья 1.", `права/обязанности: "общие"`, "x")
	a.Node.Number = "1"
	ann := Annotated{Article: a}

	got := Filename(`до*го?вор`, ann)
	if strings.ContainsAny(got, `\/:*?"<>|`) {
		t.Errorf("expected hostile runes removed, got %q", got)
	}
	if !strings.HasPrefix(got, "договор_") {
		t.Errorf("expected cleaned document stem, got %q", got)
	}
	if !strings.Contains(got, "праваобязанности_общие") {
		t.Errorf("expected cleaned title part, got %q", got)
	}
}

func TestFilename_CapsTotalLength(t *testing.T) {
	section := &segment.Node{Level: 1, Label: "Раздел", Number: strings.Repeat("1", 60)}
	chapter := &segment.Node{Level: 2, Label: "Глава", Number: strings.Repeat("2", 60)}
	a := article("Статья 9.", strings.Repeat("т", 80), "x", section, chapter)
	a.Node.Number = "9"
	ann := Annotated{Article: a, Keywords: []string{strings.Repeat("к", 30), strings.Repeat("с", 30)}}

	got := Filename(strings.Repeat("д", 80), ann)
	if n := utf8.RuneCountInString(got); n != 200 {
		t.Errorf("expected exactly 200 runes, got %d (%q)", n, got)
	}
	if !strings.HasSuffix(got, ".md") {
		t.Errorf("expected .md suffix, got %q", got)
	}
}

func TestFilename_PartCaps(t *testing.T) {
	a := article("Статья 1.", strings.Repeat("т", 80), "x")
	a.Node.Number = "1"
	ann := Annotated{Article: a, Keywords: []string{strings.Repeat("к", 30)}}

	got := Filename(strings.Repeat("д", 80), ann)
	if !strings.HasPrefix(got, strings.Repeat("д", 40)+"_") {
		t.Errorf("expected document stem capped at 40 runes, got %q", got)
	}
	if strings.Contains(got, strings.Repeat("т", 51)) {
		t.Errorf("expected title capped at 50 runes, got %q", got)
	}
	if strings.Contains(got, strings.Repeat("к", 21)) {
		t.Errorf("expected keyword capped at 20 runes, got %q", got)
	}
}

func TestFallbackFilename(t *testing.T) {
	got := FallbackFilename("закон о налогах", 3)
	if got != "закон_о_налогах_Article_3.md" {
		t.Errorf("expected %q, got %q", "закон_о_налогах_Article_3.md", got)
	}
}

func TestNameSet_Claim(t *testing.T) {
	s := NewNameSet()
	if got := s.Claim("a.md"); got != "a.md" {
		t.Errorf("expected %q, got %q", "a.md", got)
	}
	if got := s.Claim("a.md"); got != "a_2.md" {
		t.Errorf("expected %q, got %q", "a_2.md", got)
	}
	if got := s.Claim("a.md"); got != "a_3.md" {
		t.Errorf("expected %q, got %q", "a_3.md", got)
	}
	if got := s.Claim("b.md"); got != "b.md" {
		t.Errorf("expected %q, got %q", "b.md", got)
	}
}

func TestNameSet_ClaimSuffixCollision(t *testing.T) {
	s := NewNameSet()
	s.Claim("a_2.md")
	s.Claim("a.md")
	if got := s.Claim("a.md"); got != "a_3.md" {
		t.Errorf("expected suffix to skip the taken name, got %q", got)
	}
}
