// Package knowledge derives question/answer entries from parsed chat
// messages. Extraction is a pure function of its input: an Extractor holds
// only read-only tables and may be shared between goroutines.
package knowledge

import (
	"log/slog"

	"github.com/MikeSquared-Agency/linekb/internal/filter"
	"github.com/MikeSquared-Agency/linekb/internal/rules"
	"github.com/MikeSquared-Agency/linekb/internal/transcript"
)

type Extractor struct {
	rules  *rules.Rules
	filter *filter.Filter
	parser *transcript.Parser
	logger *slog.Logger
}

func New(r *rules.Rules, logger *slog.Logger) *Extractor {
	if r == nil {
		r = rules.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		rules:  r,
		filter: filter.New(r),
		parser: transcript.NewParser(logger),
		logger: logger,
	}
}

// Extract scans messages in transcript order. A user message yields at most
// one pair with the reply after it; an account message is searched for
// embedded Q/A blocks. Entries come out in the order they are found.
func (e *Extractor) Extract(msgs []transcript.Message) Result {
	res := Result{Entries: []Entry{}}

	for i, m := range msgs {
		if m.SenderType == transcript.SenderUser {
			if entry, ok := e.pairAt(msgs, i); ok {
				res.Entries = append(res.Entries, entry)
				res.Pairs++
			}
			continue
		}
		if e.answersFor(m) {
			faqs := e.embeddedFAQ(m.Content)
			res.Entries = append(res.Entries, faqs...)
			res.EmbeddedFAQ += len(faqs)
		}
	}

	return res
}

// ExtractText parses a raw export and extracts entries from it.
func (e *Extractor) ExtractText(text string) Result {
	msgs, stats := e.parser.Parse(text)
	res := e.Extract(msgs)
	res.Parse = stats

	e.logger.Debug("extraction complete",
		"messages", stats.Messages,
		"skipped_rows", stats.Skipped,
		"pairs", res.Pairs,
		"embedded_faq", res.EmbeddedFAQ,
	)
	return res
}
