package transcript

// SenderType is the first column of an export row.
type SenderType string

const (
	SenderAccount SenderType = "Account"
	SenderUser    SenderType = "User"
)

// Message is a single turn in an exported chat, in transcript order.
type Message struct {
	SenderType SenderType `json:"sender_type"`
	SenderName string     `json:"sender_name"`
	Date       string     `json:"date"`
	Time       string     `json:"time"`
	Content    string     `json:"content"`
}

// RawRow is the unescaped field list of one logical CSV row.
type RawRow []string

// Stats counts the structural anomalies recovered while parsing a document.
type Stats struct {
	HeaderFound  bool `json:"header_found"`
	Rows         int  `json:"rows"`
	Messages     int  `json:"messages"`
	Skipped      int  `json:"skipped_rows"`
	Unterminated int  `json:"unterminated_fields"`
}
