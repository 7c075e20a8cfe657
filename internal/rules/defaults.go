package rules

const defaultCategory = "その他"

var defaultCategories = CategoryTable{
	{Name: "料金", Keywords: []string{"料金", "値段", "価格", "費用", "いくら", "税込", "割引", "支払", "お支払い"}},
	{Name: "予約", Keywords: []string{"予約", "キャンセル", "日程", "空き", "撮影日", "日時"}},
	{Name: "営業時間", Keywords: []string{"営業時間", "定休日", "休業", "休み", "何時", "営業日"}},
	{Name: "アクセス", Keywords: []string{"場所", "住所", "アクセス", "駐車場", "駅", "行き方"}},
	{Name: "撮影内容", Keywords: []string{"撮影", "衣装", "着物", "ドレス", "写真", "データ", "カット"}},
	{Name: "持ち物・準備", Keywords: []string{"持ち物", "準備", "持参", "用意"}},
}

var defaultKeywordPatterns = [][2]string{
	{"price", `\d[\d,]*円`},
	{"tax", `税込|税抜`},
	{"duration", `\d+分`},
	{"cuts", `\d+カット`},
	{"outfits", `\d+着`},
	{"date", `\d{1,2}月\d{1,2}日`},
	{"hour", `\d{1,2}時`},
	{"event", `七五三|お宮参り|ハーフバースデー|誕生日|入園|入学|卒園|卒業|成人式|マタニティ|家族写真`},
	{"costume", `着物|ドレス|袴|衣装`},
	{"booking", `予約|キャンセル|日程変更`},
	{"access", `駐車場|駅`},
	{"weekday", `土日|祝日|平日`},
	{"deliverable", `データ|アルバム|プリント`},
}

var defaultSystemMessages = []string{
	"スタンプを送信しました",
	"写真を送信しました",
	"動画を送信しました",
	"ファイルを送信しました",
	"ボイスメッセージを送信しました",
	"位置情報を送信しました",
	"連絡先を送信しました",
	"メッセージの送信を取り消しました",
	"[スタンプ]",
	"[写真]",
	"[動画]",
	"[ファイル]",
	"[ボイスメッセージ]",
	"[位置情報]",
	"[連絡先]",
}

var defaultAutoReplyLabels = []string{
	"自動応答",
	"応答メッセージ",
	"Auto-reply",
}

// Form labels count only when followed by a colon (half or full width).
var defaultFormLabels = []string{
	"お子様のお名前",
	"お子さまのお名前",
	"お名前",
	"生年月日",
	"撮影希望日",
	"第一希望",
	"第二希望",
	"電話番号",
	"TEL",
	"メールアドレス",
	"ご住所",
}

var defaultPromotionPhrases = []string{
	"突然のご連絡失礼",
	"営業のご連絡",
	"ご興味がございましたら",
	"ご興味があれば",
	"無料で掲載",
	"広告掲載",
	"集客",
	"SEO対策",
	"MEO対策",
	"フォロワー",
	"ホットペッパー",
	"Instagram広告",
	"LINE広告",
	"Google広告",
	"Googleマップ",
}

// Default returns the built-in tables.
func Default() *Rules {
	patterns, err := compilePatterns(defaultKeywordPatterns)
	if err != nil {
		panic(err)
	}
	return &Rules{
		Categories:       append(CategoryTable(nil), defaultCategories...),
		DefaultCategory:  defaultCategory,
		KeywordPatterns:  patterns,
		SystemMessages:   append([]string(nil), defaultSystemMessages...),
		AutoReplyLabels:  append([]string(nil), defaultAutoReplyLabels...),
		FormLabels:       append([]string(nil), defaultFormLabels...),
		PromotionPhrases: append([]string(nil), defaultPromotionPhrases...),
	}
}
