package transcript

import (
	"log/slog"
	"strings"
)

const minFields = 5

// Parser turns a raw chat export into ordered messages.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse locates the header, tokenizes the rows after it and assembles
// messages. Malformed rows are skipped; a document without a header yields
// no messages.
func (p *Parser) Parse(text string) ([]Message, Stats) {
	var stats Stats

	lines := strings.Split(NormalizeNewlines(text), "\n")
	header := FindHeader(lines)
	if header < 0 {
		p.logger.Debug("no header signature found", "lines", len(lines))
		return nil, stats
	}
	stats.HeaderFound = true

	rows, unterminated := Tokenize(lines[header+1:])
	stats.Rows = len(rows)
	stats.Unterminated = unterminated
	if unterminated > 0 {
		p.logger.Warn("quoted field still open at end of input", "rows", len(rows))
	}

	msgs := make([]Message, 0, len(rows))
	for _, row := range rows {
		msg, ok := Assemble(row)
		if !ok {
			stats.Skipped++
			continue
		}
		msgs = append(msgs, msg)
	}
	stats.Messages = len(msgs)

	if stats.Skipped > 0 {
		p.logger.Debug("skipped short rows", "skipped", stats.Skipped)
	}
	return msgs, stats
}

// Assemble builds a message from the first five fields of a row.
func Assemble(row RawRow) (Message, bool) {
	if len(row) < minFields {
		return Message{}, false
	}
	return Message{
		SenderType: SenderType(strings.TrimSpace(row[0])),
		SenderName: strings.TrimSpace(row[1]),
		Date:       strings.TrimSpace(row[2]),
		Time:       strings.TrimSpace(row[3]),
		Content:    strings.ReplaceAll(row[4], "\r", ""),
	}, true
}
