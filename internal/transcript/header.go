package transcript

import "strings"

// headerSignatures are the accepted column lists, compared after normalization.
var headerSignatures = []string{
	"送信者タイプ,送信者名,送信日,送信時刻,内容",
	"sender type,sender name,send date,send time,content",
}

// FindHeader returns the index of the column-header line, or -1 when the
// document has none.
func FindHeader(lines []string) int {
	for i, line := range lines {
		if isHeader(line) {
			return i
		}
	}
	return -1
}

func isHeader(line string) bool {
	line = strings.TrimPrefix(line, "\ufeff")
	cols := strings.Split(line, ",")
	for i, c := range cols {
		cols[i] = strings.Trim(strings.TrimSpace(c), `"`)
	}
	norm := strings.ToLower(strings.Join(cols, ","))
	for _, sig := range headerSignatures {
		if norm == sig {
			return true
		}
	}
	return false
}
