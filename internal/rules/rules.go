// Package rules holds the ordered lookup tables that drive filtering,
// classification and keyword tagging. Table order is significant: the first
// matching category wins and keywords are collected in pattern order.
package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Category is one row of the classification table.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoryTable is an ordered association list, not a map, so that ties
// resolve to the earliest row.
type CategoryTable []Category

// Match returns the first category with a keyword contained in text.
func (t CategoryTable) Match(text string) (string, bool) {
	for _, c := range t {
		for _, kw := range c.Keywords {
			if kw != "" && strings.Contains(text, kw) {
				return c.Name, true
			}
		}
	}
	return "", false
}

// KeywordPattern is a named tag pattern. Only the matched text is used as a
// tag; the name is for configuration files and logs.
type KeywordPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// Rules bundles every table used by the extraction pipeline.
type Rules struct {
	Categories       CategoryTable
	DefaultCategory  string
	KeywordPatterns  []KeywordPattern
	SystemMessages   []string
	AutoReplyLabels  []string
	FormLabels       []string
	PromotionPhrases []string
}

// IsSystemMessage reports whether text, trimmed, is a placeholder the export
// tool writes instead of real content.
func (r *Rules) IsSystemMessage(text string) bool {
	text = strings.TrimSpace(text)
	for _, m := range r.SystemMessages {
		if text == m {
			return true
		}
	}
	return false
}

// IsAutoReplyLabel reports whether a sender name marks an automatic reply.
func (r *Rules) IsAutoReplyLabel(name string) bool {
	name = strings.TrimSpace(name)
	for _, l := range r.AutoReplyLabels {
		if name == l {
			return true
		}
	}
	return false
}

func compilePatterns(src [][2]string) ([]KeywordPattern, error) {
	out := make([]KeywordPattern, 0, len(src))
	for _, p := range src {
		re, err := regexp.Compile(p[1])
		if err != nil {
			return nil, fmt.Errorf("compile keyword pattern %q: %w", p[0], err)
		}
		out = append(out, KeywordPattern{Name: p[0], Pattern: re})
	}
	return out, nil
}
