package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Layout constants
const (
	DefaultViewportWidth  = 80
	DefaultViewportHeight = 18
	MinViewportHeight     = 6
	DefaultTextareaHeight = 3
	HeaderFooterHeight    = 9
)

// AskFunc answers one message and names the service that answered.
type AskFunc func(ctx context.Context, message string) (text, service string, err error)

// MsgAnswer carries the result of an AskFunc back into the update loop.
type MsgAnswer struct {
	Text    string
	Service string
	Err     error
}

// ChatModel is the interactive terminal chat.
type ChatModel struct {
	Msgs    []string
	Waiting bool
	width   int

	Spinner  spinner.Model
	Input    textarea.Model
	Viewport viewport.Model

	ctx context.Context
	ask AskFunc
}

func NewChatModel(ctx context.Context, greeting string, ask AskFunc) ChatModel {
	ti := textarea.New()
	ti.Placeholder = "Ask about wheat, drought, the Sahara..."
	ti.Focus()
	ti.CharLimit = 2000
	ti.SetWidth(DefaultViewportWidth - 4)
	ti.SetHeight(DefaultTextareaHeight)
	ti.ShowLineNumbers = false

	s := spinner.New()
	s.Spinner = Growth
	s.Style = StylePrimary

	m := ChatModel{
		width:    DefaultViewportWidth,
		Spinner:  s,
		Input:    ti,
		Viewport: viewport.New(DefaultViewportWidth, DefaultViewportHeight),
		ctx:      ctx,
		ask:      ask,
	}
	if greeting != "" {
		m.addMsg("BOT", greeting, "")
	}
	return m
}

func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.Spinner.Tick)
}

func (m ChatModel) askCmd(message string) tea.Cmd {
	return func() tea.Msg {
		text, service, err := m.ask(m.ctx, message)
		return MsgAnswer{Text: text, Service: service, Err: err}
	}
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width - 4
		m.Viewport.Width = msg.Width - 2
		m.Viewport.Height = msg.Height - HeaderFooterHeight
		if m.Viewport.Height < MinViewportHeight {
			m.Viewport.Height = MinViewportHeight
		}
		m.Input.SetWidth(msg.Width - 6)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.Waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.Input.Value())
			if text == "" {
				return m, nil
			}
			if text == "/quit" || text == "/exit" {
				return m, tea.Quit
			}
			m.Input.Reset()
			m.addMsg("USER", text, "")
			m.Waiting = true
			return m, tea.Batch(m.askCmd(text), m.Spinner.Tick)
		}

	case MsgAnswer:
		m.Waiting = false
		if msg.Err != nil {
			m.addMsg("ERROR", msg.Err.Error(), "")
		} else {
			m.addMsg("BOT", msg.Text, msg.Service)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// addMsg appends one entry to the visible log.
func (m *ChatModel) addMsg(kind, content, service string) {
	var entry string
	switch kind {
	case "USER":
		entry = StylePrefixUser.Render("🧑 You") + "\n" + Wrap(content, m.width)
	case "ERROR":
		entry = StylePrefixError.Render("✗ "+content)
	default:
		entry = StylePrefixBot.Render("🌾 Zer3aZ") + "\n" + RenderAnswer(content, service, m.width)
	}
	m.Msgs = append(m.Msgs, entry)
	m.refresh()
}

func (m *ChatModel) refresh() {
	m.Viewport.SetContent(strings.Join(m.Msgs, "\n\n"))
	m.Viewport.GotoBottom()
}

func (m ChatModel) View() string {
	var s strings.Builder
	s.WriteString(StyleHeader.Render("🌾 Zer3aZ Plant Breeding Assistant") + "\n")
	s.WriteString(m.Viewport.View() + "\n")
	if m.Waiting {
		s.WriteString(m.Spinner.View() + StyleSubtle.Render(" thinking...") + "\n")
	} else {
		s.WriteString("\n")
	}
	s.WriteString(StyleInputBox.Render(m.Input.View()) + "\n")
	s.WriteString(StyleSubtle.Render("enter send • /quit or esc exit • pgup/pgdn scroll"))
	return s.String()
}

// RunChat starts the chat program on the terminal until the user quits.
func RunChat(ctx context.Context, greeting string, ask AskFunc) error {
	_, err := tea.NewProgram(NewChatModel(ctx, greeting, ask), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
