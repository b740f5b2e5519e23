package keywords

// stopwords are function words excluded from keyword candidates. Tokens
// shorter than minTokenRunes are dropped before this check, so one- and
// two-letter words are not listed.
var stopwords = map[string]bool{
	// Russian
	"без": true, "более": true, "больше": true, "будет": true, "будто": true,
	"был": true, "была": true, "были": true, "было": true, "быть": true, "вам": true,
	"вас": true, "вдруг": true, "ведь": true, "весь": true, "вот": true,
	"впрочем": true, "все": true, "всегда": true, "всего": true, "всех": true,
	"всю": true, "вся": true, "где": true, "даже": true,
	"два": true, "для": true, "довольно": true, "другой": true, "его": true,
	"ее": true, "ей": true, "ему": true, "если": true, "есть": true,
	"еще": true, "здесь": true, "иногда": true, "иной": true, "или": true,
	"ими": true, "как": true, "какая": true, "какой": true, "когда": true,
	"конечно": true, "которая": true, "которого": true, "которое": true,
	"которой": true, "котором": true, "которые": true, "который": true,
	"которых": true, "кто": true, "куда": true, "либо": true, "лучше": true,
	"между": true, "меня": true, "мне": true, "много": true, "может": true,
	"можно": true, "мой": true, "моя": true, "надо": true, "наконец": true,
	"нас": true, "него": true, "нее": true, "ней": true, "нельзя": true,
	"нет": true, "нибудь": true, "никогда": true, "ним": true, "них": true,
	"ничего": true, "однако": true, "она": true, "они": true,
	"оно": true, "опять": true, "перед": true, "под": true, "после": true,
	"потом": true, "потому": true, "почти": true, "при": true, "про": true,
	"раз": true, "разве": true, "сам": true, "свою": true, "себе": true,
	"себя": true, "сейчас": true, "совсем": true, "так": true, "такой": true,
	"также": true, "там": true, "тебя": true, "тем": true, "теперь": true,
	"того": true, "тоже": true, "только": true, "том": true, "тот": true,
	"три": true, "тут": true, "уже": true, "хорошо": true, "хоть": true,
	"чего": true, "чем": true, "через": true, "что": true, "чтоб": true,
	"чтобы": true, "чуть": true, "эта": true, "эти": true, "этих": true,
	"этой": true, "этом": true, "этого": true, "этому": true, "этот": true,
	"эту": true,

	// English
	"about": true, "after": true, "all": true, "also": true, "and": true,
	"any": true, "are": true, "been": true, "before": true, "but": true,
	"can": true, "could": true, "each": true, "for": true, "from": true,
	"had": true, "has": true, "have": true, "her": true, "his": true,
	"into": true, "its": true, "may": true, "more": true, "not": true,
	"other": true, "our": true, "out": true, "over": true, "shall": true,
	"she": true, "should": true, "some": true, "such": true, "than": true,
	"that": true, "the": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "those": true,
	"under": true, "upon": true, "was": true, "were": true, "which": true,
	"will": true, "with": true, "would": true, "your": true,
}
