package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/voctools/voc-console/internal/voc"
)

// detailPhase is the modal lifecycle: closed -> loading ->
// (loaded | errored) -> closed.
type detailPhase int

const (
	detailClosed detailPhase = iota
	detailLoading
	detailLoaded
	detailErrored
)

// modalState owns all detail state. While the modal is open the
// transcript input lock is held; close releases it exactly once on
// every exit path and discards the fetched data.
type modalState struct {
	phase    detailPhase
	ticketID int64
	seq      int
	detail   *voc.Detail
	err      error
	scroll   int

	// lockDepth is 1 while the modal routes all input to itself,
	// 0 otherwise. The console equivalent of the background scroll
	// lock: it must never go negative or stay held after close.
	lockDepth int
}

func (s *modalState) open(ticketID int64) {
	s.phase = detailLoading
	s.ticketID = ticketID
	s.detail = nil
	s.err = nil
	s.scroll = 0
	s.seq++
	if s.lockDepth == 0 {
		s.lockDepth++
	}
}

func (s *modalState) close() {
	if s.phase == detailClosed {
		return
	}
	s.phase = detailClosed
	s.detail = nil
	s.err = nil
	s.scroll = 0
	s.lockDepth--
}

func (s *modalState) isOpen() bool {
	return s.phase != detailClosed
}

// apply records a fetch outcome. Results from a fetch that was
// superseded or whose modal already closed are dropped: the spinner
// state they would touch is no longer visible.
func (s *modalState) apply(seq int, detail *voc.Detail, err error) {
	if seq != s.seq || !s.isOpen() {
		return
	}
	if err != nil {
		s.phase = detailErrored
		s.err = err
		return
	}
	s.phase = detailLoaded
	s.detail = detail
}

// renderModal draws the detail panel for the current modal phase.
func (m Model) renderModal() string {
	t := m.theme

	var body string
	switch m.modal.phase {
	case detailLoading:
		body = m.spin.View() + " 상세 조회 중..."
	case detailErrored:
		body = t.ErrorText.Render(m.modal.err.Error())
	case detailLoaded:
		body = m.renderDetail(m.modal.detail)
	default:
		return ""
	}

	title := t.ModalTitle.Render(fmt.Sprintf("VOC #%d", m.modal.ticketID))
	footer := t.Faint.Render("Esc 닫기  ↑↓ 스크롤")
	content := title + "\n\n" + m.scrolled(body) + "\n\n" + footer

	width := m.width - 8
	if width < 40 {
		width = 40
	}
	panel := t.ModalBorder.Width(width).Render(content)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
	}
	return panel
}

func (m Model) renderDetail(d *voc.Detail) string {
	t := m.theme

	badges := []string{
		t.PlainBadge.Foreground(lipgloss.Color("16")).Background(UrgencyColor(d.Urgency)).Render(d.Urgency),
		t.PlainBadge.Foreground(lipgloss.Color("16")).Background(StatusColor(d.Status)).Render(d.Status),
	}

	lines := []string{
		t.CardTitle.Render(d.Title),
		strings.Join(badges, " "),
		"",
		"요청자: " + d.RequestorName,
		"유형: " + d.VocType + " / " + d.Channel,
		"등록일: " + d.RegDate,
	}
	if d.DueDate != "" {
		lines = append(lines, "기한: "+d.DueDate)
	}
	if d.UpdatedDate != "" {
		lines = append(lines, "수정일: "+d.UpdatedDate)
	}
	if d.Content != "" {
		lines = append(lines, "", t.Faint.Render("내용"), d.Content)
	}
	if d.Memo != "" {
		lines = append(lines, "", t.Faint.Render("메모"), d.Memo)
	}
	lines = append(lines, "", t.Faint.Render("변경 이력"), t.renderHistory(d.History))
	return strings.Join(lines, "\n")
}

// scrolled clips the body to the modal viewport at the current scroll
// offset.
func (m Model) scrolled(body string) string {
	lines := strings.Split(body, "\n")
	view := m.modalViewHeight()
	if len(lines) <= view {
		return body
	}
	offset := m.modal.scroll
	if offset > len(lines)-view {
		offset = len(lines) - view
	}
	return strings.Join(lines[offset:offset+view], "\n")
}

func (m Model) modalViewHeight() int {
	h := m.height - 10
	if h < 5 {
		h = 5
	}
	return h
}

func (m *Model) scrollModal(delta int) {
	next := m.modal.scroll + delta
	if next < 0 {
		next = 0
	}
	m.modal.scroll = next
}
