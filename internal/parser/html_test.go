package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_HeadingsAndParagraphs(t *testing.T) {
	p := &HTMLParser{}
	in := `<html><head><title>закон</title><style>p{color:red}</style></head>
<body>
<h1>Раздел 1.</h1>
<p>Преамбула.</p>
<h2>Статья 1. Права</h2>
<p>Текст статьи.</p>
</body></html>`
	got, err := p.Extract(strings.NewReader(in), "doc.html")
	if err != nil {
		t.Fatalf("expected extract to succeed, got %v", err)
	}
	want := "Раздел 1.\n\nПреамбула.\n\nСтатья 1. Права\n\nТекст статьи."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestHTMLParser_SkipsNonContent(t *testing.T) {
	p := &HTMLParser{}
	in := `<body><nav>меню сайта</nav><p>Содержимое.</p><script>alert(1)</script><footer>подвал</footer></body>`
	got, err := p.Extract(strings.NewReader(in), "doc.html")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Содержимое." {
		t.Errorf("expected only content text, got %q", got)
	}
}

func TestHTMLParser_ListItems(t *testing.T) {
	p := &HTMLParser{}
	in := `<body><ul><li>первый пункт</li><li>второй пункт</li></ul></body>`
	got, err := p.Extract(strings.NewReader(in), "doc.html")
	if err != nil {
		t.Fatal(err)
	}
	want := "первый пункт\n\nвторой пункт"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestHTMLParser_NestedMarkupInsideParagraph(t *testing.T) {
	p := &HTMLParser{}
	in := `<body><p>Начало <b>жирный</b> конец.</p></body>`
	got, err := p.Extract(strings.NewReader(in), "doc.html")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Начало жирный конец." {
		t.Errorf("expected flattened paragraph, got %q", got)
	}
}

func TestHTMLParser_FragmentWithoutBodyTag(t *testing.T) {
	p := &HTMLParser{}
	got, err := p.Extract(strings.NewReader("<p>Просто абзац.</p>"), "doc.html")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Просто абзац." {
		t.Errorf("expected fragment parsed, got %q", got)
	}
}
