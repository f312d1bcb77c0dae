package console

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voctools/voc-console/internal/prompt"
	"github.com/voctools/voc-console/internal/voc"
)

// Sender posts one chat message and returns the classified reply.
type Sender interface {
	Send(ctx context.Context, mode voc.Mode, content, systemPrompt string) (voc.Reply, error)
}

// DetailFetcher loads the full ticket record for the modal.
type DetailFetcher interface {
	Detail(ctx context.Context, id int64) (*voc.Detail, error)
}

const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

// Message is one transcript entry. The transcript is append-only for
// the life of the session.
type Message struct {
	Role  string
	Reply voc.Reply
	IsErr bool
}

type sendResultMsg struct {
	seq   int
	reply voc.Reply
	err   error
}

type detailResultMsg struct {
	seq    int
	detail *voc.Detail
	err    error
}

// Model is the top-level bubbletea model for the VoC chat console.
type Model struct {
	chat    Sender
	fetcher DetailFetcher
	theme   Theme

	input textinput.Model
	spin  spinner.Model

	mode     voc.Mode
	messages []Message

	// Single-flight send guard: while sending is true, Enter is a
	// no-op. sendSeq pairs a result message with the send that
	// produced it.
	sending bool
	sendSeq int

	// Card selection over the most recent ticket reply.
	lastItems   []voc.Item
	lastItemIdx int // Index into messages of the reply that owns lastItems.
	cursor      int

	modal modalState

	width  int
	height int
}

func NewModel(chat Sender, fetcher DetailFetcher) Model {
	in := textinput.New()
	in.Placeholder = voc.ModeGeneral.Placeholder()
	in.Prompt = "> "
	in.Focus()
	in.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		chat:        chat,
		fetcher:     fetcher,
		theme:       DefaultTheme(),
		input:       in,
		spin:        sp,
		mode:        voc.ModeGeneral,
		lastItemIdx: -1,
		cursor:      -1,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width - 4; w > 10 {
			m.input.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case sendResultMsg:
		if msg.seq != m.sendSeq {
			return m, nil
		}
		m.sending = false
		if msg.err != nil {
			m.messages = append(m.messages, Message{
				Role:  roleAssistant,
				Reply: voc.Reply{Kind: voc.ReplyText, Text: msg.err.Error()},
				IsErr: true,
			})
			return m, nil
		}
		m.messages = append(m.messages, Message{Role: roleAssistant, Reply: msg.reply})
		if msg.reply.Kind == voc.ReplyTicketList || msg.reply.Kind == voc.ReplyTicket {
			m.lastItems = msg.reply.Items
			m.lastItemIdx = len(m.messages) - 1
			m.cursor = 0
		}
		return m, nil

	case detailResultMsg:
		m.modal.apply(msg.seq, msg.detail, msg.err)
		return m, nil

	case spinner.TickMsg:
		if !m.sending && m.modal.phase != detailLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// While the modal holds the lock, all input routes to it. The
	// transcript underneath cannot scroll or change.
	if m.modal.isOpen() {
		switch msg.String() {
		case "esc", "q":
			m.modal.close()
		case "up", "k":
			m.scrollModal(-1)
		case "down", "j":
			m.scrollModal(1)
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		m.mode = nextMode(m.mode)
		m.input.Placeholder = m.mode.Placeholder()
		return m, nil

	case "up":
		if len(m.lastItems) > 0 && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if len(m.lastItems) > 0 && m.cursor < len(m.lastItems)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		content := strings.TrimSpace(m.input.Value())
		if content != "" {
			return m.startSend(content)
		}
		// Empty input + a selected card: Enter is the keyboard
		// equivalent of clicking the card.
		if m.cursor >= 0 && m.cursor < len(m.lastItems) {
			return m.openDetail(m.lastItems[m.cursor].VocID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startSend appends the user message optimistically, clears the input
// and fires the network call. A send already in flight makes this a
// no-op.
func (m Model) startSend(content string) (tea.Model, tea.Cmd) {
	if m.sending {
		return m, nil
	}

	m.messages = append(m.messages, Message{
		Role:  roleUser,
		Reply: voc.Reply{Kind: voc.ReplyText, Text: content},
	})
	m.input.SetValue("")
	m.sending = true
	m.sendSeq++

	mode := m.mode
	seq := m.sendSeq
	systemPrompt := prompt.Build(mode, time.Now())
	chat := m.chat

	return m, tea.Batch(
		func() tea.Msg {
			reply, err := chat.Send(context.Background(), mode, content, systemPrompt)
			return sendResultMsg{seq: seq, reply: reply, err: err}
		},
		m.spin.Tick,
	)
}

func (m Model) openDetail(ticketID int64) (tea.Model, tea.Cmd) {
	m.modal.open(ticketID)

	seq := m.modal.seq
	fetcher := m.fetcher

	return m, tea.Batch(
		func() tea.Msg {
			detail, err := fetcher.Detail(context.Background(), ticketID)
			return detailResultMsg{seq: seq, detail: detail, err: err}
		},
		m.spin.Tick,
	)
}

func nextMode(mode voc.Mode) voc.Mode {
	switch mode {
	case voc.ModeGeneral:
		return voc.ModeQueryList
	case voc.ModeQueryList:
		return voc.ModeQuerySimilar
	default:
		return voc.ModeGeneral
	}
}

func (m Model) View() string {
	if m.modal.isOpen() {
		return m.renderModal()
	}

	var b strings.Builder
	for i, message := range m.messages {
		b.WriteString(m.renderMessage(i, message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

func (m Model) renderMessage(index int, message Message) string {
	t := m.theme

	if message.Role == roleUser {
		return t.UserLabel.Render("나:") + " " + message.Reply.Text
	}

	label := t.AssistantLabel.Render("VOC:")
	if message.IsErr {
		return label + " " + t.ErrorText.Render(message.Reply.Text)
	}

	switch message.Reply.Kind {
	case voc.ReplyTicketList, voc.ReplyTicket:
		cards := make([]string, 0, len(message.Reply.Items))
		for i, item := range message.Reply.Items {
			selected := index == m.lastItemIdx && i == m.cursor
			cards = append(cards, t.renderCard(item, selected, m.width))
		}
		return label + "\n" + strings.Join(cards, "\n")
	default:
		return label + " " + message.Reply.Text
	}
}

func (m Model) statusBar() string {
	hint := "Tab 모드  ↑↓ 선택  Enter 전송/열기  Ctrl+C 종료"
	bar := "[" + string(m.mode) + "] " + hint
	if m.sending {
		bar = m.spin.View() + " " + bar
	}
	return m.theme.StatusBar.Render(bar)
}
