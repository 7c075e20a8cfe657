package knowledge

import (
	"regexp"
	"strings"
)

var (
	questionMarker = regexp.MustCompile(`^Q[.．:：]\s*`)
	answerMarker   = regexp.MustCompile(`^A[.．:：]\s*`)
)

// embeddedFAQ reads "Q. ... / A. ..." blocks written inside one message.
// A question with no answer before the next question or the end of the body
// is dropped.
func (e *Extractor) embeddedFAQ(body string) []Entry {
	var (
		out      []Entry
		question string
		answer   string
	)

	flush := func() {
		if question == "" || answer == "" {
			return
		}
		if e.filter.IsPrivate(question) || e.filter.IsPrivate(answer) {
			return
		}
		if entry, ok := e.newEntry(question, answer, PriorityHigh, SourceEmbeddedFAQ); ok {
			out = append(out, entry)
		}
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case questionMarker.MatchString(line):
			flush()
			question = questionMarker.ReplaceAllString(line, "")
			answer = ""
		case answerMarker.MatchString(line):
			answer = answerMarker.ReplaceAllString(line, "")
		case answer != "" && line != "":
			answer += "\n" + line
		}
	}
	flush()

	return out
}
