package transcript

import (
	"strings"
	"testing"
)

func TestSplitFields_EscapedQuote(t *testing.T) {
	row := SplitFields(`User,田中,2024/01/05,10:00,"He said ""hi"" to me"`)
	if len(row) != 5 {
		t.Fatalf("expected 5 fields, got %d: %q", len(row), row)
	}
	if row[4] != `He said "hi" to me` {
		t.Errorf("field[4] = %q", row[4])
	}
	if strings.Count(row[4], `"`) != 2 {
		t.Errorf("expected each escaped pair to become one quote, got %q", row[4])
	}
}

func TestSplitFields_CommaInsideQuotes(t *testing.T) {
	row := SplitFields(`Account,店舗,2024/01/05,10:00,"はい、そうです,よろしく"`)
	if len(row) != 5 {
		t.Fatalf("expected 5 fields, got %d", len(row))
	}
	if row[4] != "はい、そうです,よろしく" {
		t.Errorf("field[4] = %q", row[4])
	}
}

func TestSplitFields_TrailingComma(t *testing.T) {
	row := SplitFields("User,a,b,c,d,")
	if len(row) != 6 {
		t.Fatalf("expected 6 fields, got %d", len(row))
	}
	if row[5] != "" {
		t.Errorf("expected empty trailing field, got %q", row[5])
	}
}

func TestTokenize_MultilineField(t *testing.T) {
	lines := []string{
		`Account,店舗,2024/01/05,10:01,"一行目`,
		`二行目`,
		`三行目"`,
		`User,田中,2024/01/05,10:02,ありがとうございます`,
	}

	rows, unterminated := Tokenize(lines)
	if unterminated != 0 {
		t.Errorf("expected no unterminated fields, got %d", unterminated)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := strings.Count(rows[0][4], "\n"); got != 2 {
		t.Errorf("expected 2 embedded newlines, got %d in %q", got, rows[0][4])
	}
	if rows[0][4] != "一行目\n二行目\n三行目" {
		t.Errorf("field = %q", rows[0][4])
	}
	if rows[1][0] != "User" || rows[1][4] != "ありがとうございます" {
		t.Errorf("row after multi-line field = %q", rows[1])
	}
}

func TestTokenize_ContinuationEndingWithSeparatorStaysOpen(t *testing.T) {
	lines := []string{
		`Account,店舗,2024/01/05,10:01,"料金表`,
		`"A"プラン,`,
		`以上です"`,
	}

	rows, _ := Tokenize(lines)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if !strings.HasSuffix(rows[0][4], "以上です") {
		t.Errorf("expected field to run to closing line, got %q", rows[0][4])
	}
}

func TestTokenize_UnterminatedAtEnd(t *testing.T) {
	lines := []string{
		`User,田中,2024/01/05,10:00,"まだ閉じていない`,
		`続き`,
	}

	rows, unterminated := Tokenize(lines)
	if unterminated != 1 {
		t.Errorf("expected 1 unterminated field, got %d", unterminated)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][4] != "まだ閉じていない\n続き" {
		t.Errorf("field = %q", rows[0][4])
	}
}

func TestTokenize_SkipsBlankAndUnrelatedLines(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"some stray text",
		`"User","田中","2024/01/05","10:00","こんにちは"`,
	}

	rows, _ := Tokenize(lines)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][0] != "User" || rows[0][4] != "こんにちは" {
		t.Errorf("row = %q", rows[0])
	}
}

func TestNormalizeNewlines(t *testing.T) {
	got := NormalizeNewlines("a\r\nb\rc\n")
	if got != "a\nb\nc\n" {
		t.Errorf("NormalizeNewlines = %q", got)
	}
}
