package voc

import (
	"encoding/json"
)

// ReplyKind tags the variants an assistant reply can take.
type ReplyKind int

const (
	ReplyText ReplyKind = iota
	ReplyTicket
	ReplyTicketList
)

// Reply is the classified form of an assistant response. The shape is
// decided once, at the network boundary; renderers switch on Kind and
// never re-inspect raw JSON.
type Reply struct {
	Kind  ReplyKind
	Text  string
	Items []Item
}

// ticketKey is the field that identifies a payload as a ticket record.
const ticketKey = "voc_id"

// Classify decides how a chat reply should be rendered. Precedence:
// ticket array, single ticket, array nested under "content", then for
// GENERAL mode an OpenAI-style completion object, then plain text.
func Classify(raw json.RawMessage, mode Mode) Reply {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		// Not JSON at all: show the bytes as-is.
		return Reply{Kind: ReplyText, Text: string(raw)}
	}
	return classifyValue(value, mode)
}

func classifyValue(value any, mode Mode) Reply {
	if items, ok := asTicketList(value); ok {
		return Reply{Kind: ReplyTicketList, Items: items}
	}

	if obj, ok := value.(map[string]any); ok {
		if hasTicketKey(obj) {
			if item, ok := asTicket(obj); ok {
				return Reply{Kind: ReplyTicket, Items: []Item{item}}
			}
		}
		if nested, ok := obj["content"]; ok {
			if items, ok := asTicketList(nested); ok {
				return Reply{Kind: ReplyTicketList, Items: items}
			}
		}
		if mode == ModeGeneral {
			if text, ok := extractCompletionText(obj); ok {
				return Reply{Kind: ReplyText, Text: text}
			}
			return Reply{Kind: ReplyText, Text: prettyJSON(obj)}
		}
	}

	if s, ok := value.(string); ok {
		return Reply{Kind: ReplyText, Text: s}
	}
	return Reply{Kind: ReplyText, Text: prettyJSON(value)}
}

// asTicketList accepts a non-empty array whose first element carries
// the ticket key. Elements that fail to decode are skipped.
func asTicketList(value any) ([]Item, bool) {
	arr, ok := value.([]any)
	if !ok || len(arr) == 0 {
		return nil, false
	}
	first, ok := arr[0].(map[string]any)
	if !ok || !hasTicketKey(first) {
		return nil, false
	}

	items := make([]Item, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		if item, ok := asTicket(obj); ok {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

func asTicket(obj map[string]any) (Item, bool) {
	b, err := json.Marshal(obj)
	if err != nil {
		return Item{}, false
	}
	var item Item
	if err := json.Unmarshal(b, &item); err != nil {
		return Item{}, false
	}
	return item, true
}

func hasTicketKey(obj map[string]any) bool {
	_, ok := obj[ticketKey]
	return ok
}

// extractCompletionText pulls choices[0].message.content out of an
// OpenAI-style completion object.
func extractCompletionText(obj map[string]any) (string, bool) {
	choices, ok := obj["choices"].([]any)
	if !ok || len(choices) == 0 {
		return "", false
	}
	first, ok := choices[0].(map[string]any)
	if !ok {
		return "", false
	}
	message, ok := first["message"].(map[string]any)
	if !ok {
		return "", false
	}
	content, ok := message["content"].(string)
	if !ok {
		return "", false
	}
	return content, true
}

func prettyJSON(value any) string {
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
