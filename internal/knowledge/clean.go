package knowledge

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// LINE writes emoticons as "(emoji)" or lowercase codes like "(moon wink)".
	emojiCode  = regexp.MustCompile(`\((?:emoji|絵文字|[a-z]+(?: [a-z]+)*)\)`)
	emojiRange = regexp.MustCompile(`[\x{1F300}-\x{1FAFF}\x{2600}-\x{27BF}\x{FE0F}]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Clean strips emoji remnants and collapses whitespace.
func Clean(text string) string {
	text = emojiCode.ReplaceAllString(text, "")
	text = emojiRange.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// meetsLength applies the minimum sizes to already-cleaned text.
func meetsLength(question, answer string) bool {
	return utf8.RuneCountInString(question) >= minQuestionRunes &&
		utf8.RuneCountInString(answer) >= minAnswerRunes
}
