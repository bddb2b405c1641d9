// Package tui plays a story in the terminal against a local player
package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	"github.com/KirkDiggler/rpg-story/internal/engine/values"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
)

var (
	sceneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87AFFF")).
			Bold(true)

	thoughtStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Italic(true)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#875F5F"))

	endingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D75F5F"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))
)

const helpText = "enter/space: continue  1-9: choose  p: pay price  s/f: succeed/fail  r: revive  q: quit"

// Model is the bubbletea model of a terminal playthrough
type Model struct {
	player   *playback.Player
	viewport viewport.Model
	log      []string
	status   string
	payNext  bool
	width    int
	height   int
}

// NewModel wraps a player positioned at its first scene
func NewModel(p *playback.Player) Model {
	m := Model{player: p, viewport: viewport.New(80, 20)}
	m.log = append(m.log, m.renderCurrent())
	m.viewport.SetContent(strings.Join(m.log, "\n\n"))
	return m
}

// Player returns the underlying player
func (m Model) Player() *playback.Player {
	return m.player
}

// Status returns the last command's feedback, if any
func (m Model) Status() string {
	return m.status
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.72)
		m.viewport.Height = msg.Height - 4
		m.viewport.SetContent(strings.Join(m.log, "\n\n"))
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter", " ":
			m = m.apply(m.player.Advance())
		case "s", "f":
			m = m.apply(m.resolve(key == "s"))
		case "r":
			m = m.apply(m.player.Revive())
		case "p":
			m.payNext = !m.payNext
			m.status = ""
			if m.payNext {
				m.status = "next choice pays its unlock price"
			}
		default:
			if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 9 {
				err := m.choose(n - 1)
				m = m.apply(err)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// apply records a command's result and re-renders the log
func (m Model) apply(err error) Model {
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.status = ""
	m.log = append(m.log, m.renderCurrent())
	m.viewport.SetContent(strings.Join(m.log, "\n\n"))
	m.viewport.GotoBottom()
	return m
}

func (m Model) resolve(success bool) error {
	el, _ := m.player.Current()
	if _, ok := el.(*story.DialogueTask); ok {
		return m.player.ResolveDialogueTask(success)
	}
	return m.player.ResolveQTE(success)
}

func (m *Model) choose(index int) error {
	el, _ := m.player.Current()
	choice, ok := el.(*story.Choice)
	if !ok {
		return playback.ErrNotAtChoice
	}
	if index >= len(choice.Options) {
		return fmt.Errorf("no option %d", index+1)
	}
	opt := choice.Options[index]
	paid := m.payNext && opt.UnlockPrice > 0
	if !values.OptionUnlocked(opt, m.player.Values(), paid) {
		return fmt.Errorf("%q is locked", opt.Text)
	}
	m.payNext = false
	return m.player.SelectChoice(opt.ID)
}

// View implements tea.Model
func (m Model) View() string {
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), m.renderPanel())

	footer := helpStyle.Render(helpText)
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, main, footer)
}

func (m Model) renderPanel() string {
	view := m.player.View()
	var b strings.Builder

	b.WriteString(sceneStyle.Render("SCENE") + "\n")
	if view.Scene != nil {
		b.WriteString(view.Scene.Title + "\n")
	}
	if view.LocationName != "" {
		b.WriteString(view.LocationName + "\n")
	}

	b.WriteString("\n" + sceneStyle.Render("VALUES") + "\n")
	ids := make([]string, 0, len(view.Values))
	for id := range view.Values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	s := m.player.Story()
	for _, id := range ids {
		name := id
		if gv, ok := s.GlobalValue(id); ok && gv.Name != "" {
			name = gv.Name
		}
		fmt.Fprintf(&b, "%s: %d\n", name, view.Values[id])
	}

	width := m.width - m.viewport.Width - 4
	if width < 20 {
		width = 20
	}
	return panelStyle.Width(width).Render(b.String())
}

// renderCurrent describes what the player is looking at now
func (m Model) renderCurrent() string {
	view := m.player.View()
	s := m.player.Story()

	if view.Ended {
		label := "THE END"
		switch view.Ending {
		case playback.EndingBad:
			label = "BAD ENDING"
		case playback.EndingLinearNoNext:
			label = "END OF STORY"
		}
		out := endingStyle.Render(label)
		if view.RevivalAvailable {
			out += "\n" + helpStyle.Render("press r to try again")
		}
		return out
	}

	if view.Element == nil {
		if view.Scene == nil {
			return ""
		}
		header := sceneStyle.Render(view.Scene.Title)
		if view.LocationName != "" {
			header += "  " + helpStyle.Render(view.LocationName)
		}
		return header
	}

	return renderElement(s, view.Element, m.player.Values())
}

func characterName(s *story.Story, id string) string {
	if c, ok := s.Character(id); ok {
		return c.Name
	}
	return "???"
}

func renderElement(s *story.Story, el story.Element, v values.Values) string {
	switch el := el.(type) {
	case *story.Narration:
		return el.Text
	case *story.Dialogue:
		return speakerStyle.Render(characterName(s, el.CharacterID)+":") + " " + el.Text
	case *story.Thought:
		return thoughtStyle.Render(characterName(s, el.CharacterID) + " thinks: " + el.Text)
	case *story.Choice:
		var b strings.Builder
		b.WriteString(el.Text)
		for i, opt := range el.Options {
			line := fmt.Sprintf("\n  %d) %s", i+1, opt.Text)
			if !values.OptionUnlocked(opt, v, false) {
				suffix := " [locked]"
				if opt.UnlockPrice > 0 {
					suffix = fmt.Sprintf(" [locked, %d]", opt.UnlockPrice)
				}
				line = lockedStyle.Render(line + suffix)
			}
			b.WriteString(line)
		}
		return b.String()
	case *story.QTE:
		out := el.Description
		if el.IntroText != "" {
			out = el.IntroText + "\n" + out
		}
		switch el.QTEType {
		case story.QTECombo:
			out += "\n  keys: " + el.DirectionSequence
		case story.QTEUnlock:
			out += fmt.Sprintf("\n  pattern: %v", el.UnlockPattern)
		default:
			out += "\n  keys: " + el.KeySequence
		}
		return out + "\n" + helpStyle.Render(fmt.Sprintf("%ds  s: succeed  f: fail", el.TimeLimit))
	case *story.DialogueTask:
		out := speakerStyle.Render("Goal:") + " " + el.Goal
		if el.OpeningLine != "" {
			out += "\n" + characterName(s, el.TargetCharacterID) + ": " + el.OpeningLine
		}
		if len(el.DialogueTopics) > 0 {
			out += "\n  topics: " + strings.Join(el.DialogueTopics, ", ")
		}
		return out + "\n" + helpStyle.Render("s: succeed  f: fail")
	default:
		return helpStyle.Render(fmt.Sprintf("(%s)", el.Type()))
	}
}

// Run starts a full-screen playthrough
func Run(p *playback.Player) error {
	prog := tea.NewProgram(NewModel(p), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
