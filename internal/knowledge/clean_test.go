package knowledge

import (
	"testing"

	"github.com/MikeSquared-Agency/linekb/internal/rules"
)

func TestClean(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"こんにちは(emoji)  😀 元気\n\nです", "こんにちは 元気 です"},
		{"ありがとうございます(moon wink)(絵文字)", "ありがとうございます"},
		{"  料金(税込)は\t15000円です  ", "料金(税込)は 15000円です"},
		{"☀️晴れの日撮影", "晴れの日撮影"},
		{"", ""},
	}

	for _, c := range cases {
		if got := Clean(c.in); got != c.want {
			t.Errorf("Clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCategorizeQuestion_Deterministic(t *testing.T) {
	r := rules.Default()
	q := "予約するときの料金はいくらですか"

	first := CategorizeQuestion(r, q)
	for i := 0; i < 5; i++ {
		if got := CategorizeQuestion(r, q); got != first {
			t.Fatalf("categorization changed between calls: %q vs %q", first, got)
		}
	}
	if first != "料金" {
		t.Errorf("expected earlier table row to win, got %q", first)
	}
}

func TestCategorizeQuestion_Default(t *testing.T) {
	if got := CategorizeQuestion(rules.Default(), "ありがとうございました"); got != "その他" {
		t.Errorf("expected default category, got %q", got)
	}
}

func TestExtractKeywords(t *testing.T) {
	r := rules.Default()

	got := ExtractKeywords(r, "七五三の料金はいくらですか", "税込15,000円です。七五三は平日がおすすめです。")
	if got != "15,000円,税込,七五三,平日" {
		t.Errorf("ExtractKeywords = %q", got)
	}

	if got := ExtractKeywords(r, "こんにちは", "よろしくお願いします"); got != "" {
		t.Errorf("expected no keywords, got %q", got)
	}
}

func TestBaseSource(t *testing.T) {
	cases := map[string]string{
		SourcePair:                  SourcePair,
		SourceEmbeddedFAQ:           SourcePair,
		"LINE-shop2 (embedded FAQ)": "LINE-shop2",
		"LINE-shop2":                "LINE-shop2",
	}
	for in, want := range cases {
		if got := BaseSource(in); got != want {
			t.Errorf("BaseSource(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRelabel(t *testing.T) {
	entries := []Entry{
		{Question: "q1", Source: SourcePair},
		{Question: "q2", Source: SourceEmbeddedFAQ},
	}

	out := Relabel(entries, "LINE-shop2")
	if out[0].Source != "LINE-shop2" || out[1].Source != "LINE-shop2 (embedded FAQ)" {
		t.Errorf("unexpected sources %q, %q", out[0].Source, out[1].Source)
	}
	if entries[0].Source != SourcePair {
		t.Error("Relabel must not modify its input")
	}
	if got := Relabel(entries, ""); got[1].Source != SourceEmbeddedFAQ {
		t.Errorf("empty label changed source to %q", got[1].Source)
	}
}
