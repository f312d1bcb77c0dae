package voc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_TicketArray(t *testing.T) {
	raw := json.RawMessage(`[
		{"voc_id": 101, "title": "배송 지연 불만", "status": "IN_PROGRESS", "urgency": "HIGH"},
		{"voc_id": 102, "title": "로그인 오류 문의", "status": "RECEIPT", "urgency": "MEDIUM"}
	]`)

	reply := Classify(raw, ModeQueryList)

	require.Equal(t, ReplyTicketList, reply.Kind)
	require.Len(t, reply.Items, 2)
	assert.Equal(t, int64(101), reply.Items[0].VocID)
	assert.Equal(t, "로그인 오류 문의", reply.Items[1].Title)
}

func TestClassify_SingleTicket(t *testing.T) {
	raw := json.RawMessage(`{"voc_id": 7, "title": "환불 요청", "status": "COMPLETE"}`)

	reply := Classify(raw, ModeQueryList)

	require.Equal(t, ReplyTicket, reply.Kind)
	require.Len(t, reply.Items, 1)
	assert.Equal(t, int64(7), reply.Items[0].VocID)
}

func TestClassify_NestedContent(t *testing.T) {
	raw := json.RawMessage(`{"content": [
		{"voc_id": 1, "title": "first"},
		{"voc_id": 2, "title": "second"}
	]}`)

	reply := Classify(raw, ModeQueryList)

	require.Equal(t, ReplyTicketList, reply.Kind)
	require.Len(t, reply.Items, 2)
	assert.Equal(t, "first", reply.Items[0].Title)
	assert.Equal(t, "second", reply.Items[1].Title)
}

func TestClassify_TicketArrayBeatsGeneralExtraction(t *testing.T) {
	// The ticket-shape signal must win even in GENERAL mode.
	raw := json.RawMessage(`[{"voc_id": 1, "title": "t"}]`)

	reply := Classify(raw, ModeGeneral)

	assert.Equal(t, ReplyTicketList, reply.Kind)
}

func TestClassify_GeneralCompletionExtraction(t *testing.T) {
	raw := json.RawMessage(`{"choices": [{"message": {"content": "안녕하세요"}}]}`)

	reply := Classify(raw, ModeGeneral)

	require.Equal(t, ReplyText, reply.Kind)
	assert.Equal(t, "안녕하세요", reply.Text)
}

func TestClassify_GeneralExtractionFailurePrettyPrints(t *testing.T) {
	raw := json.RawMessage(`{"choices": "nope", "extra": 1}`)

	reply := Classify(raw, ModeGeneral)

	require.Equal(t, ReplyText, reply.Kind)
	assert.Contains(t, reply.Text, "\"extra\": 1")
}

func TestClassify_PlainString(t *testing.T) {
	reply := Classify(json.RawMessage(`"그냥 텍스트"`), ModeQueryList)

	require.Equal(t, ReplyText, reply.Kind)
	assert.Equal(t, "그냥 텍스트", reply.Text)
}

func TestClassify_NonJSONBytes(t *testing.T) {
	reply := Classify(json.RawMessage("not json at all"), ModeGeneral)

	require.Equal(t, ReplyText, reply.Kind)
	assert.Equal(t, "not json at all", reply.Text)
}

func TestClassify_EmptyArrayIsText(t *testing.T) {
	reply := Classify(json.RawMessage(`[]`), ModeQueryList)

	assert.Equal(t, ReplyText, reply.Kind)
}

func TestClassify_ArrayWithoutTicketKeyIsText(t *testing.T) {
	reply := Classify(json.RawMessage(`[{"id": 1}, {"id": 2}]`), ModeQueryList)

	assert.Equal(t, ReplyText, reply.Kind)
}

func TestClassify_ObjectWithoutSignalsInQueryMode(t *testing.T) {
	reply := Classify(json.RawMessage(`{"message": "no tickets"}`), ModeQueryList)

	require.Equal(t, ReplyText, reply.Kind)
	assert.Contains(t, reply.Text, "no tickets")
}
