package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/voctools/voc-console/internal/voc"
)

// nullPlaceholder stands in for a missing original value in the
// change-history timeline.
const nullPlaceholder = "-"

// renderCard draws one ticket summary card. Optional fields (due date,
// memo) appear only when present.
func (t Theme) renderCard(item voc.Item, selected bool, width int) string {
	idBadge := t.IDBadge.Render(fmt.Sprintf("#%d", item.VocID))

	badges := []string{idBadge}
	for _, raw := range []string{item.VocType, item.Channel} {
		if raw != "" {
			badges = append(badges, t.PlainBadge.Render(raw))
		}
	}
	if item.Urgency != "" {
		badges = append(badges, t.PlainBadge.
			Foreground(lipgloss.Color("16")).
			Background(UrgencyColor(item.Urgency)).
			Render(item.Urgency))
	}
	if item.Status != "" {
		badges = append(badges, t.PlainBadge.
			Foreground(lipgloss.Color("16")).
			Background(StatusColor(item.Status)).
			Render(item.Status))
	}

	lines := []string{
		t.CardTitle.Render(item.Title),
		strings.Join(badges, " "),
	}
	if item.RegDate != "" {
		lines = append(lines, t.Faint.Render("등록 "+item.RegDate))
	}
	if item.DueDate != "" {
		lines = append(lines, t.Faint.Render("기한 "+item.DueDate))
	}
	if item.Memo != "" {
		lines = append(lines, t.Faint.Render(item.Memo))
	}

	style := t.Card
	if selected {
		style = t.CardSelected
	}
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderHistory draws the change timeline in entry order. A nil
// original value renders as the literal placeholder, left of the
// updated value.
func (t Theme) renderHistory(entries []voc.History) string {
	if len(entries) == 0 {
		return t.Faint.Render("변경 이력 없음")
	}

	var b strings.Builder
	for i, entry := range entries {
		original := nullPlaceholder
		if entry.OriginalValue != nil {
			original = *entry.OriginalValue
		}
		fmt.Fprintf(&b, "%s: %s → %s", entry.FieldName, original, entry.UpdatedValue)
		if entry.UpdatedDate != "" {
			b.WriteString(" " + t.Faint.Render("("+entry.UpdatedDate+")"))
		}
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
