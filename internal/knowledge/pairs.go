package knowledge

import "github.com/MikeSquared-Agency/linekb/internal/transcript"

// pairAt pairs a user message with the reply directly after it. Only the
// next message is considered.
func (e *Extractor) pairAt(msgs []transcript.Message, i int) (Entry, bool) {
	if msgs[i].SenderType != transcript.SenderUser || i+1 >= len(msgs) {
		return Entry{}, false
	}
	q, a := msgs[i], msgs[i+1]
	if !e.answersFor(a) {
		return Entry{}, false
	}
	if !e.validQuestion(q.Content) || !e.validAnswer(a.Content) {
		return Entry{}, false
	}
	return e.newEntry(q.Content, a.Content, PriorityNormal, SourcePair)
}

// answersFor reports whether a message speaks for the business account.
func (e *Extractor) answersFor(m transcript.Message) bool {
	return m.SenderType == transcript.SenderAccount || e.rules.IsAutoReplyLabel(m.SenderName)
}

func (e *Extractor) validQuestion(text string) bool {
	return !e.filter.IsSystem(text) && !e.filter.IsPrivate(text)
}

func (e *Extractor) validAnswer(text string) bool {
	return e.validQuestion(text) && !e.filter.IsFormOrPromotion(text)
}

// newEntry cleans both sides and fills in category and keywords. Inferred
// pairs must meet the minimum lengths; explicit FAQ blocks only need text on
// both sides.
func (e *Extractor) newEntry(question, answer string, priority int, source string) (Entry, bool) {
	question, answer = Clean(question), Clean(answer)
	if question == "" || answer == "" {
		return Entry{}, false
	}
	if priority == PriorityNormal && !meetsLength(question, answer) {
		return Entry{}, false
	}
	return Entry{
		Category: CategorizeQuestion(e.rules, question),
		Question: question,
		Answer:   answer,
		Keywords: ExtractKeywords(e.rules, question, answer),
		Priority: priority,
		IsActive: true,
		Source:   source,
	}, true
}
