package prompt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/voctools/voc-console/internal/voc"
)

// KST is the fixed civil timezone every date computation anchors to,
// independent of the host's local zone.
var KST = time.FixedZone("KST", 9*60*60)

// TimeLayout renders instants as "YYYY-MM-DD HH:mm:ss+09:00".
const TimeLayout = "2006-01-02 15:04:05-07:00"

// FormatKST renders t in the fixed civil timezone.
func FormatKST(t time.Time) string {
	return t.In(KST).Format(TimeLayout)
}

// Build returns the system prompt for the mode, anchored at now. Pure:
// identical (mode, now) pairs produce identical prompts.
func Build(mode voc.Mode, now time.Time) string {
	switch mode {
	case voc.ModeQueryList:
		return buildQueryPrompt(now, queryListTask)
	case voc.ModeQuerySimilar:
		return buildQueryPrompt(now, querySimilarTask)
	default:
		return generalPrompt
	}
}

const generalPrompt = `You are a helpful assistant for a customer-service (VoC) operations team.
Answer questions directly and concisely in the language the user wrote in.
Do not invent ticket data; when the user asks for ticket records, tell them
to switch to the ticket query mode.`

const queryListTask = `Translate the user's request into ONE ticket query plan.`

const querySimilarTask = `The user describes an issue. Build ONE ticket query plan that finds
similar tickets: put the distinguishing terms of the described issue into
the "keyword" parameter and keep other filters minimal.`

// buildQueryPrompt assembles the structured-query instruction set: the
// current KST wall clock, the plan schema the model must emit, the
// accepted filter vocabulary, the bilingual term table, and the
// relative-date rules with examples resolved against now.
func buildQueryPrompt(now time.Time, task string) string {
	today, _ := ResolveRelative("today", now)
	yesterday, _ := ResolveRelative("yesterday", now)
	last3, _ := ResolveRelative("last 3 days", now)

	var b strings.Builder
	fmt.Fprintf(&b, "Current time: %s\n\n", FormatKST(now))
	b.WriteString(task)
	b.WriteString(`

Respond with ONLY a JSON object, no prose, in exactly this shape:

{"method": "GET", "endpoint": "/voc-data", "params": {...}, "payload": null}

Accepted params keys and values:
- status: RECEIPT | IN_PROGRESS | COMPLETE | CLOSED
- urgency: HIGH | MEDIUM | LOW
- voc_type: COMPLAINT | INQUIRY | SUGGESTION | PRAISE
- channel: PHONE | EMAIL | WEB | APP
- start_date, end_date: "YYYY-MM-DD HH:mm:ss+09:00"
- keyword: free text
- limit: positive integer

Term mapping (use the right-hand enum value):
- 접수 / received -> RECEIPT
- 처리중 / 진행중 / in progress -> IN_PROGRESS
- 완료 / done -> COMPLETE
- 종결 / closed -> CLOSED
- 긴급 / 높음 / urgent / high -> HIGH
- 보통 / normal / medium -> MEDIUM
- 낮음 / low -> LOW
- 불만 / complaint -> COMPLAINT
- 문의 / inquiry -> INQUIRY
- 제안 / suggestion -> SUGGESTION
- 칭찬 / praise -> PRAISE

Relative dates resolve against the current time above, in the +09:00
civil timezone. A day starts at 00:00:00 and ends at 23:59:59, both
inclusive. Examples:
`)
	fmt.Fprintf(&b, "- \"today\" / \"오늘\": start_date=%q end_date=%q\n",
		FormatKST(today.Start), FormatKST(today.End))
	fmt.Fprintf(&b, "- \"yesterday\" / \"어제\" (yesterday through today): start_date=%q end_date=%q\n",
		FormatKST(yesterday.Start), FormatKST(yesterday.End))
	fmt.Fprintf(&b, "- \"last 3 days\" / \"최근 3일\": start_date=%q end_date=%q\n",
		FormatKST(last3.Start), FormatKST(last3.End))
	b.WriteString(`- a specific month and day ("8월 20일", "08-20") means that whole day
  in the current year.

Omit params the user did not ask for. Never invent values outside the
vocabularies above.`)
	return b.String()
}

// DateRange is an inclusive civil-time interval in KST.
type DateRange struct {
	Start time.Time
	End   time.Time
}

var (
	lastNDaysRe = regexp.MustCompile(`(?i)^last\s+(\d+)\s+days?$`)
	recentKoRe  = regexp.MustCompile(`^최근\s*(\d+)일$`)
	monthDayRe  = regexp.MustCompile(`^(\d{1,2})월\s*(\d{1,2})일$`)
	numericMDRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})$`)
)

// ResolveRelative resolves a relative-date expression against now.
// "yesterday" means yesterday through today, and "last N days" spans
// N calendar days ending today, matching the rules handed to the model.
func ResolveRelative(expr string, now time.Time) (DateRange, bool) {
	expr = strings.TrimSpace(expr)
	now = now.In(KST)

	switch strings.ToLower(expr) {
	case "today", "오늘":
		return DateRange{Start: dayStart(now), End: dayEnd(now)}, true
	case "yesterday", "어제":
		return DateRange{Start: dayStart(now.AddDate(0, 0, -1)), End: dayEnd(now)}, true
	}

	if m := lastNDaysRe.FindStringSubmatch(expr); m != nil {
		return lastNDays(m[1], now)
	}
	if m := recentKoRe.FindStringSubmatch(expr); m != nil {
		return lastNDays(m[1], now)
	}

	if m := monthDayRe.FindStringSubmatch(expr); m != nil {
		return monthDay(m[1], m[2], now)
	}
	if m := numericMDRe.FindStringSubmatch(expr); m != nil {
		return monthDay(m[1], m[2], now)
	}

	return DateRange{}, false
}

func lastNDays(raw string, now time.Time) (DateRange, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return DateRange{}, false
	}
	return DateRange{Start: dayStart(now.AddDate(0, 0, -(n - 1))), End: dayEnd(now)}, true
}

func monthDay(rawMonth, rawDay string, now time.Time) (DateRange, bool) {
	month, err := strconv.Atoi(rawMonth)
	if err != nil || month < 1 || month > 12 {
		return DateRange{}, false
	}
	day, err := strconv.Atoi(rawDay)
	if err != nil || day < 1 || day > 31 {
		return DateRange{}, false
	}
	date := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, KST)
	return DateRange{Start: date, End: dayEnd(date)}, true
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, KST)
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, KST)
}
