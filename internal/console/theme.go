package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme collects the console styles in one place.
type Theme struct {
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	ErrorText      lipgloss.Style
	Card           lipgloss.Style
	CardSelected   lipgloss.Style
	CardTitle      lipgloss.Style
	IDBadge        lipgloss.Style
	PlainBadge     lipgloss.Style
	Faint          lipgloss.Style
	ModalBorder    lipgloss.Style
	ModalTitle     lipgloss.Style
	StatusBar      lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		UserLabel:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		AssistantLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		ErrorText:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().Bold(true),
		IDBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("240")).
			Padding(0, 1),
		PlainBadge: lipgloss.NewStyle().Padding(0, 1),
		Faint:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ModalBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 2),
		ModalTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		StatusBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Status buckets. Matching is case-insensitive and accepts both exact
// enum values and loose substrings across Korean and English tokens.
var (
	statusComplete   = []string{"complete", "resolved", "done", "완료"}
	statusInProgress = []string{"in_progress", "in progress", "progress", "처리중", "진행"}
	statusPending    = []string{"pending", "receipt", "open", "대기", "접수"}
	statusClosed     = []string{"closed", "cancel", "종결"}
)

// Urgency buckets, including priority codes.
var (
	urgencyHigh   = []string{"high", "urgent", "p1", "긴급", "높음"}
	urgencyMedium = []string{"medium", "normal", "p2", "보통"}
	urgencyLow    = []string{"low", "p3", "낮음"}
)

// StatusColor picks a badge color for a raw status string.
func StatusColor(status string) lipgloss.Color {
	switch {
	case matchesBucket(status, statusComplete):
		return lipgloss.Color("42")
	case matchesBucket(status, statusInProgress):
		return lipgloss.Color("39")
	case matchesBucket(status, statusPending):
		return lipgloss.Color("220")
	case matchesBucket(status, statusClosed):
		return lipgloss.Color("245")
	default:
		return lipgloss.Color("250")
	}
}

// UrgencyColor picks a badge color for a raw urgency string.
func UrgencyColor(urgency string) lipgloss.Color {
	switch {
	case matchesBucket(urgency, urgencyHigh):
		return lipgloss.Color("196")
	case matchesBucket(urgency, urgencyMedium):
		return lipgloss.Color("214")
	case matchesBucket(urgency, urgencyLow):
		return lipgloss.Color("42")
	default:
		return lipgloss.Color("250")
	}
}

func matchesBucket(raw string, tokens []string) bool {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return false
	}
	for _, token := range tokens {
		if value == token || strings.Contains(value, token) {
			return true
		}
	}
	return false
}
