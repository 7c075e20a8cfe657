// Package filter holds the content predicates that keep private data,
// intake forms and sales pitches out of the knowledge base.
package filter

import (
	"regexp"
	"strings"

	"github.com/MikeSquared-Agency/linekb/internal/rules"
)

var privatePatterns = []*regexp.Regexp{
	// A name followed by an honorific. Courtesy words such as お客様 and 皆様
	// match too; losing those answers is accepted.
	regexp.MustCompile(`[\p{Han}\p{Hiragana}\p{Katakana}ー]{2,10}(?:さん|様|さま|くん|君|ちゃん|殿)`),
	regexp.MustCompile(`\d{2,4}-\d{2,4}-\d{4}`),
	regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
}

// IsPrivateMessage reports whether text looks like it carries personal data.
func IsPrivateMessage(text string) bool {
	for _, re := range privatePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Filter applies a rule set's marker tables.
type Filter struct {
	rules     *rules.Rules
	formLabel *regexp.Regexp
	phrases   []string
}

func New(r *rules.Rules) *Filter {
	f := &Filter{rules: r}

	// An empty label would turn every colon into a form marker.
	var quoted []string
	for _, l := range r.FormLabels {
		if l = strings.TrimSpace(l); l != "" {
			quoted = append(quoted, regexp.QuoteMeta(l))
		}
	}
	if len(quoted) > 0 {
		f.formLabel = regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)\s*[:：]`)
	}
	for _, p := range r.PromotionPhrases {
		if p != "" {
			f.phrases = append(f.phrases, strings.ToLower(p))
		}
	}
	return f
}

// IsPrivate is IsPrivateMessage; it exists so callers can hold one Filter.
func (f *Filter) IsPrivate(text string) bool {
	return IsPrivateMessage(text)
}

// IsFormOrPromotion reports whether text is a reservation form or an
// unsolicited promotion.
func (f *Filter) IsFormOrPromotion(text string) bool {
	if f.formLabel != nil && f.formLabel.MatchString(text) {
		return true
	}
	lower := strings.ToLower(text)
	for _, p := range f.phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// IsSystem reports whether text is an export placeholder such as a sticker notice.
func (f *Filter) IsSystem(text string) bool {
	return f.rules.IsSystemMessage(text)
}

var defaultFilter = New(rules.Default())

// IsFormOrPromotion checks text against the default marker tables.
func IsFormOrPromotion(text string) bool {
	return defaultFilter.IsFormOrPromotion(text)
}

// IsSystemMessage checks text against the default placeholder set.
func IsSystemMessage(text string) bool {
	return defaultFilter.IsSystem(text)
}
