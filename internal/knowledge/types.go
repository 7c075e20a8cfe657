package knowledge

import (
	"strings"

	"github.com/MikeSquared-Agency/linekb/internal/transcript"
)

const (
	// PriorityHigh marks entries lifted from an explicit Q/A block.
	PriorityHigh = 1
	// PriorityNormal marks entries inferred from adjacent turns.
	PriorityNormal = 2
)

const (
	SourcePair        = "LINE"
	SourceEmbeddedFAQ = SourcePair + embeddedFAQSuffix

	embeddedFAQSuffix = " (embedded FAQ)"
)

// BaseSource strips the embedded-FAQ marker, leaving the account label an
// entry belongs to. A pair and an FAQ entry for the same question share it.
func BaseSource(source string) string {
	return strings.TrimSuffix(source, embeddedFAQSuffix)
}

// Relabel swaps the default "LINE" prefix of entry sources for label, so
// exports from several accounts can live side by side.
func Relabel(entries []Entry, label string) []Entry {
	if label == "" || label == SourcePair {
		return entries
	}
	out := make([]Entry, len(entries))
	for i, e := range entries {
		if strings.HasPrefix(e.Source, SourcePair) {
			e.Source = label + strings.TrimPrefix(e.Source, SourcePair)
		}
		out[i] = e
	}
	return out
}

const (
	minQuestionRunes = 6
	minAnswerRunes   = 11
)

// Entry is one question/answer record destined for the knowledge base.
type Entry struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Keywords string `json:"keywords"`
	Priority int    `json:"priority"`
	IsActive bool   `json:"is_active"`
	Source   string `json:"source"`
}

// Result holds the entries extracted from one document and how the document
// parsed.
type Result struct {
	Entries     []Entry          `json:"entries"`
	Parse       transcript.Stats `json:"parse"`
	Pairs       int              `json:"pairs"`
	EmbeddedFAQ int              `json:"embedded_faq"`
}
