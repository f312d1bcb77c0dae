package voc

// Mode is the conversation intent selected in the console. It governs
// prompt construction and the input placeholder, nothing else.
type Mode string

const (
	ModeGeneral      Mode = "GENERAL"
	ModeQueryList    Mode = "QUERY_LIST"
	ModeQuerySimilar Mode = "QUERY_SIMILAR"
)

// ParseMode maps a wire value to a Mode, defaulting to GENERAL.
func ParseMode(raw string) Mode {
	switch Mode(raw) {
	case ModeQueryList:
		return ModeQueryList
	case ModeQuerySimilar:
		return ModeQuerySimilar
	default:
		return ModeGeneral
	}
}

// Placeholder returns the input hint shown for the mode.
func (m Mode) Placeholder() string {
	switch m {
	case ModeQueryList:
		return "Ask for tickets, e.g. 최근 3일 긴급 VOC 보여줘"
	case ModeQuerySimilar:
		return "Describe an issue to find similar tickets"
	default:
		return "Ask anything"
	}
}

// Item is a ticket summary record. Received verbatim from the chat
// reply or the detail endpoint; never mutated client-side.
type Item struct {
	VocID   int64  `json:"voc_id"`
	Title   string `json:"title"`
	VocType string `json:"voc_type"`
	Channel string `json:"channel"`
	Status  string `json:"status"`
	Urgency string `json:"urgency"`
	RegDate string `json:"reg_date"`
	DueDate string `json:"due_date,omitempty"`
	Content string `json:"content,omitempty"`
	Memo    string `json:"memo,omitempty"`
}

// History is one change-log entry on a ticket. OriginalValue is nil
// when the field had no prior value.
type History struct {
	FieldName     string  `json:"field_name"`
	OriginalValue *string `json:"original_value"`
	UpdatedValue  string  `json:"updated_value"`
	UpdatedDate   string  `json:"updated_date"`
}

// Detail is the full ticket record shown in the modal. Fetched fresh
// per open and discarded on close.
type Detail struct {
	Item
	RequestorName string    `json:"requestor_name"`
	UpdatedDate   string    `json:"updated_date"`
	History       []History `json:"-"`
}
