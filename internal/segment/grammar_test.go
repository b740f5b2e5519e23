package segment

import "testing"

func TestGrammar_MatchLevels(t *testing.T) {
	g := DefaultGrammar()

	cases := []struct {
		line   string
		level  int
		label  string
		number string
		title  string
	}{
		{"Раздел 1. Общие положения", 1, "Раздел", "1", "Общие положения"},
		{"Глава 2.", 2, "Глава", "2", ""},
		{"§ 3. Порядок применения", 3, "§", "3", "Порядок применения"},
		{"Статья 15. Права и обязанности", 4, "Статья", "15", "Права и обязанности"},
		{"  Статья 7.", 4, "Статья", "7", ""},
		{"Статья 12.1. Дополнительные меры", 4, "Статья", "12.1", "Дополнительные меры"},
		{"Статья 5.2.3.", 4, "Статья", "5.2.3", ""},
	}
	for _, c := range cases {
		h, ok := g.Match(c.line)
		if !ok {
			t.Errorf("expected %q to match, got no match", c.line)
			continue
		}
		if h.Level != c.level {
			t.Errorf("%q: expected level %d, got %d", c.line, c.level, h.Level)
		}
		if h.Label != c.label {
			t.Errorf("%q: expected label %q, got %q", c.line, c.label, h.Label)
		}
		if h.Number != c.number {
			t.Errorf("%q: expected number %q, got %q", c.line, c.number, h.Number)
		}
		if h.Title != c.title {
			t.Errorf("%q: expected title %q, got %q", c.line, c.title, h.Title)
		}
	}
}

func TestGrammar_MatchCaseInsensitive(t *testing.T) {
	g := DefaultGrammar()
	for _, line := range []string{"СТАТЬЯ 1. Текст", "статья 2.", "ГЛАВА 3.", "раздел 4."} {
		if _, ok := g.Match(line); !ok {
			t.Errorf("expected %q to match regardless of case", line)
		}
	}
}

func TestGrammar_NoMatch(t *testing.T) {
	g := DefaultGrammar()
	for _, line := range []string{
		"",
		"Обычный текст статьи.",
		"Статья без номера",
		"В статье 5 сказано",
		"Постановление от 1 января",
	} {
		if h, ok := g.Match(line); ok {
			t.Errorf("expected %q not to match, got level %d", line, h.Level)
		}
	}
}

func TestGrammar_MaxLevel(t *testing.T) {
	if got := DefaultGrammar().MaxLevel(); got != 4 {
		t.Errorf("expected max level 4, got %d", got)
	}
}
