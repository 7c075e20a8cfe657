package transcript

import "strings"

const (
	quote     = '"'
	separator = ','
)

// rowPrefixes are the sender-role prefixes that start an unquoted row.
var rowPrefixes = []string{
	string(SenderAccount) + ",",
	string(SenderUser) + ",",
}

type scanState int

const (
	stateNormal scanState = iota
	stateInField
)

// rowScanner groups physical lines into logical rows. A row whose line has
// an odd number of quotes keeps absorbing lines until a line carrying a quote
// that does not end with a separator closes it.
type rowScanner struct {
	state        scanState
	buf          strings.Builder
	rows         []RawRow
	unterminated int
}

func (s *rowScanner) feed(line string) {
	switch s.state {
	case stateInField:
		s.buf.WriteByte('\n')
		s.buf.WriteString(line)
		if strings.ContainsRune(line, quote) && !strings.HasSuffix(line, string(separator)) {
			s.emit()
		}
	default:
		if strings.TrimSpace(line) == "" || !startsRow(line) {
			return
		}
		s.buf.WriteString(line)
		if strings.Count(line, string(quote))%2 == 1 {
			s.state = stateInField
			return
		}
		s.emit()
	}
}

// finish closes a field left open at end of input. It reports whether one was.
func (s *rowScanner) finish() bool {
	if s.state != stateInField {
		return false
	}
	s.unterminated++
	s.emit()
	return true
}

func (s *rowScanner) emit() {
	s.rows = append(s.rows, SplitFields(s.buf.String()))
	s.buf.Reset()
	s.state = stateNormal
}

func startsRow(line string) bool {
	if line[0] == quote {
		return true
	}
	for _, p := range rowPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Tokenize turns physical lines into logical rows. The second return value
// counts quoted fields that were still open at end of input.
func Tokenize(lines []string) ([]RawRow, int) {
	var s rowScanner
	for _, line := range lines {
		s.feed(line)
	}
	s.finish()
	return s.rows, s.unterminated
}

// SplitFields splits one logical row into unescaped fields. Newlines inside
// the row are kept as field content.
func SplitFields(row string) RawRow {
	var (
		fields   RawRow
		field    strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(row); i++ {
		c := row[i]
		switch {
		case c == quote && inQuotes && i+1 < len(row) && row[i+1] == quote:
			field.WriteByte(quote)
			i++
		case c == quote:
			inQuotes = !inQuotes
		case c == separator && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	return append(fields, field.String())
}
