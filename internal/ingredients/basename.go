package ingredients

import "strings"

// mapping is one known phrase and its canonical base form.
type mapping struct {
	phrase string
	base   string
}

// baseNameMappings maps known ingredient phrases to canonical singular base
// forms. Matching is by substring containment and the first hit wins, so
// more specific phrases must come before their general substrings.
var baseNameMappings = []mapping{
	{"potatoes", "potato"},
	{"tomatoes", "tomato"},
	{"onions", "onion"},
	{"carrots", "carrot"},
	{"green chillies", "green chili"},
	{"dry red chillies", "red chili"},
	{"coriander leaves", "coriander"},
	{"curry leaves", "curry leaf"},
	{"mustard seeds", "mustard seed"},
	{"cumin seeds", "cumin"},
	{"turmeric powder", "turmeric"},
	{"red chilli powder", "chili powder"},
	{"garam masala powder", "garam masala"},
	{"coconut oil", "oil"},
	{"olive oil", "oil"},
}

// stopwords are descriptive tokens dropped when deriving a base name from an
// unmapped phrase.
var stopwords = map[string]struct{}{
	"fresh":   {},
	"dried":   {},
	"powder":  {},
	"whole":   {},
	"ground":  {},
	"chopped": {},
	"sliced":  {},
	"minced":  {},
}

// NormalizeBaseName derives the normalized base form of an ingredient name,
// the semantic join key toward real products. The mapping table is consulted
// first; otherwise the first non-stopword token is used, falling back to the
// first raw token, and finally to the name itself.
func NormalizeBaseName(name string) string {
	lower := strings.ToLower(name)

	for _, m := range baseNameMappings {
		if strings.Contains(lower, m.phrase) {
			return m.base
		}
	}

	words := strings.Split(lower, " ")
	for _, w := range words {
		if _, stop := stopwords[w]; !stop {
			if w != "" {
				return w
			}
		}
	}
	if len(words) > 0 && words[0] != "" {
		return words[0]
	}
	return lower
}
