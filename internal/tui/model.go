package tui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hverdal/tuido/internal/app"
	"github.com/hverdal/tuido/internal/domain"
)

// Model is the terminal front end over the modal engine. All interaction
// semantics live in the controller; the model translates key presses and
// renders snapshots.
type Model struct {
	ctrl     *app.Controller
	keys     keyMap
	help     help.Model
	renderer *markdownRenderer

	width  int
	height int
	ready  bool
}

// Option configures the model.
type Option func(*Model)

// WithKeys overrides the undo/redo bindings shown in help.
func WithKeys(undoKey, redoKey string) Option {
	return func(m *Model) {
		m.keys = newKeyMap(undoKey, redoKey)
	}
}

// NewModel constructs the model around a loaded controller.
func NewModel(ctrl *app.Controller, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		ctrl:     ctrl,
		keys:     newKeyMap("", ""),
		help:     h,
		renderer: &markdownRenderer{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		m.ctrl.HandleKey(key)
		if m.ctrl.QuitRequested() {
			return m, tea.Quit
		}
		return m, nil

	default:
		return m, nil
	}
}

// View handles view.
func (m Model) View() tea.View {
	if !m.ready {
		v := tea.NewView("")
		v.AltScreen = true
		return v
	}
	snap := m.ctrl.Snapshot()

	if snap.Mode == app.ModeHelp {
		v := tea.NewView(m.renderHelp())
		v.AltScreen = true
		return v
	}

	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)
	noteStyle := lipgloss.NewStyle().Foreground(muted).Italic(true)

	var b strings.Builder
	title := titleStyle.Render("tuido")
	if snap.Dirty {
		title += statusStyle.Render(" [+]")
	}
	counts := fmt.Sprintf("%d/%d done", snap.Items.CountCompleted(), len(snap.Items))
	b.WriteString(title + "  " + statusStyle.Render(counts) + "\n\n")

	if len(snap.Items) == 0 {
		b.WriteString(noteStyle.Render("No todos yet. Press i to add one.") + "\n")
	}
	first, last := m.visibleWindow(snap)
	for i := first; i < last; i++ {
		b.WriteString(m.renderItem(snap, i, snap.Items[i], accent) + "\n")
	}
	if last < len(snap.Items) {
		b.WriteString(statusStyle.Render(fmt.Sprintf("  … %d more", len(snap.Items)-last)) + "\n")
	}

	if note := selectedNote(snap); note != "" {
		b.WriteString("\n" + noteStyle.Render("note: "+note) + "\n")
	}

	b.WriteString("\n" + m.renderStatusLine(snap, accent, muted))
	if line := renderInputLine(snap); line != "" {
		b.WriteString("\n" + line)
	}

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	b.WriteString("\n" + lipgloss.NewStyle().Foreground(muted).Render(helpBubble.View(m.keys)))

	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

// visibleWindow bounds the rendered rows to the terminal height, sliding so
// the selection stays on screen. Chrome above and below the list takes seven
// rows.
func (m Model) visibleWindow(snap app.Snapshot) (int, int) {
	rows := m.height - 7
	if rows < 3 {
		rows = 3
	}
	if len(snap.Items) <= rows {
		return 0, len(snap.Items)
	}
	first := snap.Selected - rows/2
	first = min(first, len(snap.Items)-rows)
	first = max(first, 0)
	return first, first + rows
}

// renderItem renders one list row with cursor, checkbox, priority marker
// and completion styling.
func (m Model) renderItem(snap app.Snapshot, index int, item domain.Item, accent color.Color) string {
	cursor := "  "
	if index == snap.Selected {
		cursor = "❯ "
	}
	box := "[ ]"
	if item.Completed {
		box = "[x]"
	}
	line := box + " "
	if item.HasPriority() {
		line += priorityStyle(item.Priority).Render(fmt.Sprintf("(%c)", item.Priority)) + " "
	}
	text := item.Text
	if item.Completed {
		text = lipgloss.NewStyle().Faint(true).Strikethrough(true).Render(text)
	}
	line += text
	if item.HasNote() {
		line += lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(" •")
	}

	rendered := cursor + line
	if snap.Visual.Active && index >= snap.Visual.Start && index <= snap.Visual.End {
		rendered = lipgloss.NewStyle().Background(lipgloss.Color("237")).Render(rendered)
	} else if index == snap.Selected {
		rendered = lipgloss.NewStyle().Foreground(accent).Render(cursor) + line
	}
	return rendered
}

// renderStatusLine renders the mode segment and the latest status message.
func (m Model) renderStatusLine(snap app.Snapshot, accent, muted color.Color) string {
	segment := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("235")).
		Background(accent).
		Padding(0, 1).
		Render(modeLabel(snap.Mode))
	status := lipgloss.NewStyle().Foreground(muted).Render(snap.Status)
	return segment + " " + status
}

// renderInputLine renders the active buffer with its mode prompt, or ""
// outside the text modes.
func renderInputLine(snap app.Snapshot) string {
	var prompt string
	switch snap.Mode {
	case app.ModeInsert:
		prompt = "new: "
	case app.ModeEdit:
		prompt = "edit: "
	case app.ModeNoteEdit:
		prompt = "note: "
	case app.ModeSearch:
		prompt = "/"
	case app.ModeCommand:
		prompt = ":"
	default:
		return ""
	}
	return prompt + snap.Buffer + "█"
}

// renderHelp renders the full-screen key reference.
func (m Model) renderHelp() string {
	width := m.width - 4
	if width < 24 {
		width = 72
	}
	body := m.renderer.render(helpMarkdown, width)
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("press esc or q to close")
	return body + "\n\n" + hint
}

// modeLabel formats a mode for the status segment.
func modeLabel(mode app.Mode) string {
	return "-- " + strings.ToUpper(string(mode)) + " --"
}

// priorityStyle colors a priority marker. A is the hottest.
func priorityStyle(priority byte) lipgloss.Style {
	switch priority {
	case 'A':
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	case 'B':
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case 'C':
		return lipgloss.NewStyle().Foreground(lipgloss.Color("112"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	}
}

// selectedNote returns the selected item's note, if any.
func selectedNote(snap app.Snapshot) string {
	if snap.Selected < 0 || snap.Selected >= len(snap.Items) {
		return ""
	}
	return snap.Items[snap.Selected].Note
}
