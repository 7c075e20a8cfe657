package knowledge

import (
	"strings"

	"github.com/MikeSquared-Agency/linekb/internal/rules"
)

// CategorizeQuestion returns the first table category with a keyword in
// text, or the rule set's default.
func CategorizeQuestion(r *rules.Rules, text string) string {
	if name, ok := r.Categories.Match(text); ok {
		return name
	}
	return r.DefaultCategory
}

// ExtractKeywords collects the first match of each pattern over the question
// and answer, deduplicated in pattern order, joined with commas.
func ExtractKeywords(r *rules.Rules, question, answer string) string {
	text := question + " " + answer

	seen := make(map[string]bool)
	var tags []string
	for _, p := range r.KeywordPatterns {
		m := p.Pattern.FindString(text)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		tags = append(tags, m)
	}
	return strings.Join(tags, ",")
}
