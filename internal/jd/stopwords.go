package jd

// stopwords is the fixed bilingual (Spanish/English) function-word list
// excluded from keyword matching. Membership is checked after token
// sanitization, so entries are lowercase.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range stopwordList {
		stopwords[w] = struct{}{}
	}
}

var stopwordList = []string{
	"a", "ante", "bajo", "cabe", "con", "contra", "de", "desde", "durante",
	"en", "entre", "hacia", "hasta", "mediante", "para", "por", "según",
	"sin", "sobre", "tras", "un", "una", "unos", "unas", "el", "la", "los",
	"las", "lo", "al", "del", "y", "o", "u", "pero", "que", "se", "su",
	"sus", "es", "son", "ser", "ha", "han", "haber", "como", "más", "menos",
	"muy", "esto", "esta", "estas", "estos",
	"the", "and", "for", "with", "from", "into", "your", "you", "are",
	"our", "their", "was", "were", "over", "about", "will", "shall",
	"should", "can", "could", "would", "may", "might", "than", "then",
	"them", "they", "this", "that", "these", "those", "of", "on", "in",
	"by", "at", "to", "be", "is", "it", "we",
}
