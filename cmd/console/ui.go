package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/tribe-engine/pkg/config"
	"github.com/jwebster45206/tribe-engine/pkg/engine"
	"github.com/jwebster45206/tribe-engine/pkg/storage"
	"github.com/muesli/reflow/wordwrap"
)

const (
	AgentName       = "Elder"
	PlaceHolderText = "What will you do today? (help for commands)"
)

var difficulties = []config.Difficulty{config.Easy, config.Normal, config.Hard}

type entry struct {
	fromPlayer bool
	isError    bool
	text       string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	store   storage.Storage
	options engine.Options
	game    *game

	log          []entry
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error

	// Difficulty selection state
	showDifficultyModal bool
	selected            int

	// Quit confirmation state
	showQuitModal bool
}

type gameCreatedMsg struct {
	game *game
	err  error
}

// Earth tones for the camp, ember for the headings.
var (
	chatPanelStyle = lipgloss.NewStyle().Padding(2, 0, 1, 3)
	metaPanelStyle = lipgloss.NewStyle().Padding(2, 2, 0, 0)

	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	narratorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("180"))
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("109"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("130")).
			Padding(1, 3).
			Background(lipgloss.Color("234")).
			Foreground(lipgloss.Color("223"))

	modalTitleStyle        = titleStyle.Align(lipgloss.Center)
	modalItemStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("223"))
	modalSelectedItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("234")).Background(lipgloss.Color("208")).Bold(true)
	separatorStyle         = promptStyle
)

func NewConsoleUI(store storage.Storage, options engine.Options) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(2)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	selected := 1
	for i, d := range difficulties {
		if options.Config != nil && options.Config.Difficulty == d {
			selected = i
		}
	}

	return ConsoleUI{
		store:               store,
		options:             options,
		textarea:            ta,
		chatViewport:        chatVp,
		metaViewport:        metaVp,
		showDifficultyModal: true,
		selected:            selected,
	}
}

func writeMetadata(s *engine.Session) string {
	p := s.Player()
	t := s.Tribe()
	w := s.World()

	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(p.Name)) + "\n\n")
	fmt.Fprintf(&content, "Day %d, %s\n", s.Day(), w.Season)
	fmt.Fprintf(&content, "Weather: %s\n\n", w.Weather(s.Day()).Kind)

	fmt.Fprintf(&content, "Level %d (%d xp)\n", p.Level, p.XP)
	fmt.Fprintf(&content, "Health %d/%d\n", p.Health, p.MaxHealth)
	fmt.Fprintf(&content, "Stamina %d/%d\n", p.Stamina, p.MaxStamina)
	if p.IsResting() {
		fmt.Fprintf(&content, "Resting %d more day(s)\n", p.RestDaysRemaining)
	}
	content.WriteString("\n")

	content.WriteString("Skills:\n")
	for _, sk := range sortedKeys(p.Skills) {
		fmt.Fprintf(&content, "• %s %d\n", sk, p.Skills[sk])
	}
	content.WriteString("\n")

	fmt.Fprintf(&content, "%s:\n", t.Name)
	fmt.Fprintf(&content, "• food %d\n", t.Resources.Food)
	fmt.Fprintf(&content, "• materials %d\n", t.Resources.Materials)
	fmt.Fprintf(&content, "• wealth %d\n", t.Resources.Wealth)
	fmt.Fprintf(&content, "• spirit %d\n", t.Resources.SpiritEnergy)
	fmt.Fprintf(&content, "• morale %d\n", t.Attributes.Morale)
	content.WriteString("\n")

	if a := s.Pending(); a != nil {
		content.WriteString(errorStyle.Render("A "+a.Name+" blocks your path!") + "\n\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Act\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /copy: Copy\n")

	return content.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// writeChatContent rebuilds the log for the current viewport width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding
	if chatWidth < 10 {
		chatWidth = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("TRIBE ENGINE") + "\n\n")
	content.WriteString("Type what you will do today. Type help for commands.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	for _, e := range m.log {
		switch {
		case e.fromPlayer:
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(e.text, chatWidth-5) + "\n\n")
		case e.isError:
			content.WriteString(errorStyle.Render(wordwrap.String(e.text, chatWidth)) + "\n\n")
		default:
			content.WriteString(narratorStyle.Render(AgentName+": ") + wordwrap.String(e.text, chatWidth-len(AgentName)-2) + "\n\n")
		}
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

// lastNarration returns the most recent engine output.
func (m ConsoleUI) lastNarration() string {
	for i := len(m.log) - 1; i >= 0; i-- {
		if !m.log[i].fromPlayer && !m.log[i].isError {
			return m.log[i].text
		}
	}
	return ""
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 6
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m *ConsoleUI) refresh() {
	m.writeChatContent()
	if m.game != nil {
		m.metaViewport.SetContent(writeMetadata(m.game.session))
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showDifficultyModal {
		return m.updateDifficultyModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			m.handleInput(input)
			return m, nil
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) handleInput(input string) {
	m.log = append(m.log, entry{fromPlayer: true, text: input})

	if strings.EqualFold(input, "/copy") {
		text := m.lastNarration()
		if err := clipboard.WriteAll(text); err != nil {
			m.log = append(m.log, entry{isError: true, text: "Could not copy: " + err.Error()})
		} else {
			m.log = append(m.log, entry{text: "Copied to clipboard."})
		}
		m.refresh()
		return
	}

	out, err := m.game.run(context.Background(), input)
	switch {
	case errors.Is(err, errEmpty):
	case err != nil:
		m.log = append(m.log, entry{isError: true, text: err.Error()})
	default:
		m.log = append(m.log, entry{text: out})
	}
	m.refresh()
}

func (m ConsoleUI) startGame(d config.Difficulty) tea.Cmd {
	return func() tea.Msg {
		opts := m.options
		if opts.Config == nil || opts.Config.Difficulty != d {
			opts.Config = config.ForDifficulty(string(d))
		}
		g, err := newGame(m.store, opts)
		return gameCreatedMsg{g, err}
	}
}

func (m ConsoleUI) updateDifficultyModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case gameCreatedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.game = msg.game
		m.showDifficultyModal = false
		m.log = append(m.log, entry{text: dayStartText(m.game.session.DayStart())})
		if m.width > 0 && m.height > 0 {
			m.resize()
		}
		m.refresh()
		m.textarea.Focus()
		m.ready = true
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
			}
		case tea.KeyDown:
			if m.selected < len(difficulties)-1 {
				m.selected++
			}
		case tea.KeyEnter:
			return m, m.startGame(difficulties[m.selected])
		}
	}

	return m, nil
}

func dayStartText(ds engine.DayStartReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day %d dawns. It is %s and the weather is %s. You have %d stamina.", ds.Day, ds.Season, ds.Weather.Kind, ds.Stamina)
	if ds.Event != nil {
		b.WriteString(" " + ds.Event.Description)
	}
	if ds.Milestone != nil {
		b.WriteString(" " + ds.Milestone.Description)
	}
	return b.String()
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showDifficultyModal {
					return m, nil
				}
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
	content.WriteString("Unsaved days will be lost.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderDifficultyModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to start game: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else {
		content.WriteString(modalTitleStyle.Render("Choose a Difficulty"))
		content.WriteString("\n\n")
		for i, d := range difficulties {
			if i == m.selected {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", d)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", d)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showDifficultyModal {
		return m.renderDifficultyModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.7) - 4
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
