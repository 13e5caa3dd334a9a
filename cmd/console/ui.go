package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/adventure-engine/internal/handlers"
	"github.com/jwebster45206/adventure-engine/pkg/interp"
)

const PlaceHolderText = "Type a command (HELP for instructions)..."

const (
	roleNarrator = "narrator"
	rolePlayer   = "player"
	roleError    = "error"
)

type transcriptEntry struct {
	role string
	text string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	session      *handlers.SessionResponse
	transcript   []transcriptEntry
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	loading      bool
	gameOver     bool

	// Quit confirmation state
	showQuitModal bool
}

type commandResultMsg struct {
	session *handlers.SessionResponse
	err     error
}

type sessionRefreshMsg struct {
	session *handlers.SessionResponse
	err     error
}

type forcedTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, sr *handlers.SessionResponse) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	ui := ConsoleUI{
		config:       cfg,
		client:       client,
		session:      sr,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
	}
	if sr.Result != nil {
		ui.transcript = append(ui.transcript, transcriptEntry{roleNarrator, sr.Result.Message})
	}
	return ui
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.session.Result != nil && m.session.Result.Kind == interp.Forced {
		return tea.Batch(textarea.Blink, forcedTick(m.config.ForcedDelay))
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.writeTranscript()
		m.metaViewport.SetContent(m.writeMetadata())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading || m.gameOver {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			m.textarea.Reset()
			m.loading = true
			m.transcript = append(m.transcript, transcriptEntry{rolePlayer, input})
			m.writeTranscript()

			return m, m.submitCommand(input)
		}

	case commandResultMsg:
		m.loading = false
		if msg.err != nil {
			m.transcript = append(m.transcript, transcriptEntry{roleError, msg.err.Error()})
			m.writeTranscript()
			return m, nil
		}
		return m.applySession(msg.session)

	case forcedTickMsg:
		// The pause is over; ask the server where the chain stands. The
		// worker may already have advanced it.
		return m, m.refreshSession()

	case sessionRefreshMsg:
		if msg.err != nil {
			m.transcript = append(m.transcript, transcriptEntry{roleError, msg.err.Error()})
			m.writeTranscript()
			return m, nil
		}
		if msg.session.View.Phase == "awaiting_forced" {
			m.loading = true
			return m, m.submitCommand("FORCED")
		}
		// A server-side worker may have advanced the chain while we
		// waited; narrate where it left the player.
		if msg.session.View.RoomID != m.session.View.RoomID {
			m.transcript = append(m.transcript, transcriptEntry{roleNarrator, msg.session.View.Description})
		}
		m.session = msg.session
		if msg.session.View.Phase == "game_over" && !m.gameOver {
			m.gameOver = true
			m.transcript = append(m.transcript, transcriptEntry{roleNarrator, "GAME OVER"})
		}
		m.writeTranscript()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// applySession folds a command response into the transcript and decides
// whether the forced chain needs another hop.
func (m ConsoleUI) applySession(sr *handlers.SessionResponse) (tea.Model, tea.Cmd) {
	m.session = sr
	if sr.Result != nil && sr.Result.Message != "" {
		m.transcript = append(m.transcript, transcriptEntry{roleNarrator, sr.Result.Message})
	}
	m.writeTranscript()
	m.metaViewport.SetContent(m.writeMetadata())

	if sr.Result == nil {
		return m, nil
	}
	switch sr.Result.Kind {
	case interp.Forced:
		return m, forcedTick(m.config.ForcedDelay)
	case interp.GameOver:
		m.gameOver = true
		m.transcript = append(m.transcript, transcriptEntry{roleNarrator, "GAME OVER"})
		m.writeTranscript()
	case interp.Quit:
		return m, tea.Quit
	}
	return m, nil
}

func (m ConsoleUI) submitCommand(input string) tea.Cmd {
	return func() tea.Msg {
		sr, err := sendCommand(m.client, m.config.APIBaseURL, m.session.ID, input)
		return commandResultMsg{sr, err}
	}
}

func (m ConsoleUI) refreshSession() tea.Cmd {
	return func() tea.Msg {
		sr, err := getSession(m.client, m.config.APIBaseURL, m.session.ID)
		return sessionRefreshMsg{sr, err}
	}
}

func forcedTick(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return forcedTickMsg{}
	})
}

func (m *ConsoleUI) writeTranscript() {
	chatWidth := m.chatViewport.Width - 6
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(m.session.Game)) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	for _, entry := range m.transcript {
		switch entry.role {
		case rolePlayer:
			content.WriteString(playerStyle.Render("> ") + wordwrap.String(entry.text, chatWidth-2) + "\n\n")
		case roleError:
			content.WriteString(errorStyle.Render("Error: "+wordwrap.String(entry.text, chatWidth-7)) + "\n\n")
		default:
			content.WriteString(narratorStyle.Render(wordwrap.String(entry.text, chatWidth)) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(promptStyle.Render("...") + "\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("SESSION") + "\n\n")

	content.WriteString("ID:\n")
	content.WriteString(m.session.ID.String()[:8] + "...\n\n")

	view := m.session.View
	content.WriteString("Room:\n")
	content.WriteString(view.RoomName + "\n\n")

	content.WriteString("Objects here:\n")
	if len(view.Objects) == 0 {
		content.WriteString("None\n\n")
	} else {
		for _, o := range view.Objects {
			content.WriteString("• " + o + "\n")
		}
		content.WriteString("\n")
	}

	content.WriteString("Inventory:\n")
	if len(view.Inventory) == 0 {
		content.WriteString("Empty\n\n")
	} else {
		for _, o := range view.Inventory {
			content.WriteString("• " + o + "\n")
		}
		content.WriteString("\n")
	}

	content.WriteString("Exits:\n")
	content.WriteString(strings.Join(view.Directions, ", ") + "\n\n")

	content.WriteString("Keys:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")

	return content.String()
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to quit your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
