// Package play is an interactive playground: it shows a document with a
// cursor, feeds typed keys to the motion matcher and highlights the range
// each completed motion resolves to.
package play

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vimotion/internal/buffer"
	"github.com/zjrosen/vimotion/internal/keys"
	"github.com/zjrosen/vimotion/internal/log"
	"github.com/zjrosen/vimotion/internal/motion"
	"github.com/zjrosen/vimotion/internal/preview"
	"github.com/zjrosen/vimotion/internal/pubsub"
)

var (
	cursorPosStyle = lipgloss.NewStyle().Foreground(preview.GutterColor)
	motionStyle    = lipgloss.NewStyle().Bold(true)
	noMatchStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C41A16", Dark: "#E06C75"})
	messageStyle   = lipgloss.NewStyle().Italic(true)
)

// Config holds what the playground starts from.
type Config struct {
	Registry *motion.Registry
	Text     string
	Cursor   buffer.Position
	// Load re-reads the document for the reload key. Nil disables reload.
	Load func() (string, error)
	// Events delivers document changes made on disk. Optional.
	Events pubsub.Subscriber[string]
}

// outcome is the last settled key sequence.
type outcome struct {
	keys   string
	status motion.Status
	motion string
	rng    buffer.Range
	ok     bool
}

type snapshot struct {
	doc    buffer.Lines
	cursor buffer.Position
}

// Model is the playground's bubbletea model.
type Model struct {
	ctx      context.Context
	reg      *motion.Registry
	matcher  *motion.Matcher
	load     func() (string, error)
	listener *pubsub.ContinuousListener[string]

	doc     buffer.Lines
	cursor  buffer.Position
	history []snapshot
	last    *outcome
	message string

	keys     keys.PlayKeyMap
	help     help.Model
	viewport viewport.Model
	width    int
	height   int
}

// New creates the playground model. ctx bounds the event subscription and
// is passed to motion resolution.
func New(ctx context.Context, cfg Config) Model {
	doc := buffer.NewDocument(cfg.Text)
	m := Model{
		ctx:      ctx,
		reg:      cfg.Registry,
		matcher:  motion.NewMatcher(cfg.Registry),
		load:     cfg.Load,
		doc:      doc,
		cursor:   buffer.Clamp(doc, cfg.Cursor),
		keys:     keys.Play,
		help:     help.New(),
		viewport: viewport.New(80, 20),
	}
	if cfg.Events != nil {
		m.listener = pubsub.NewContinuousListener(ctx, cfg.Events)
	}
	m.refresh()
	return m
}

// Init starts listening for document events.
func (m Model) Init() tea.Cmd {
	if m.listener == nil {
		return nil
	}
	return m.listener.Listen()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.resize()
		m.refresh()
		return m, nil

	case pubsub.Event[string]:
		if m.listener == nil {
			return m, nil
		}
		switch msg.Type {
		case pubsub.ChangedEvent:
			m.replace(msg.Payload)
			m.message = "reloaded after change on disk"
		case pubsub.FailedEvent:
			m.message = "reload failed: " + msg.Payload
		}
		m.refresh()
		return m, m.listener.Listen()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.Escape):
		m.matcher.Reset()
		m.last = nil
	case key.Matches(msg, m.keys.Up):
		m.moveTo(buffer.Clamp(m.doc, m.cursor.WithLine(m.cursor.Line-1)))
	case key.Matches(msg, m.keys.Down):
		m.moveTo(buffer.Clamp(m.doc, m.cursor.WithLine(m.cursor.Line+1)))
	case key.Matches(msg, m.keys.Left):
		m.moveTo(buffer.Left(m.cursor))
	case key.Matches(msg, m.keys.Right):
		m.moveTo(buffer.Right(m.doc, m.cursor))
	case key.Matches(msg, m.keys.Jump):
		m.jump()
	case key.Matches(msg, m.keys.Delete):
		m.deleteRange()
	case key.Matches(msg, m.keys.Undo):
		m.undo()
	case key.Matches(msg, m.keys.Reload):
		m.reload()
	case msg.Type == tea.KeySpace:
		m.feed(" ")
	case msg.Type == tea.KeyRunes:
		for _, k := range buffer.Graphemes(string(msg.Runes)) {
			m.feed(k)
		}
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// feed passes one key to the matcher and applies the motion once it
// completes.
func (m *Model) feed(k string) {
	typed := strings.Join(append(m.matcher.Pending(), k), "")
	res := m.matcher.Feed(k)
	switch res.Status {
	case motion.StatusPending:
		m.last = nil
	case motion.StatusNoMatch:
		m.last = &outcome{keys: typed, status: res.Status}
	case motion.StatusMatched:
		rng, ok := m.reg.Apply(m.ctx, m.doc, res, m.cursor)
		m.last = &outcome{keys: typed, status: res.Status, motion: res.Motion.ID(), rng: rng, ok: ok}
	}
}

func (m *Model) moveTo(p buffer.Position) {
	m.cursor = p
	m.matcher.Reset()
	m.last = nil
}

// jump moves the cursor to the end of the range away from it.
func (m *Model) jump() {
	rng, ok := m.Selection()
	if !ok {
		m.message = "no range to jump across"
		return
	}
	target := rng.Start
	if rng.Start == m.cursor {
		target = rng.End
	}
	m.moveTo(buffer.Clamp(m.doc, target))
}

func (m *Model) deleteRange() {
	rng, ok := m.Selection()
	if !ok {
		m.message = "no range to delete"
		return
	}
	m.history = append(m.history, snapshot{doc: m.doc, cursor: m.cursor})
	m.doc = buffer.NewDocument(preview.Delete(m.doc, rng))
	m.moveTo(buffer.Clamp(m.doc, rng.Start))
	m.message = "deleted " + rng.String()
	log.Debug(log.CatCLI, "Deleted range in playground", "range", rng)
}

func (m *Model) undo() {
	if len(m.history) == 0 {
		m.message = "nothing to undo"
		return
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.doc = prev.doc
	m.moveTo(prev.cursor)
}

func (m *Model) reload() {
	if m.load == nil {
		m.message = "reload unavailable for stdin"
		return
	}
	text, err := m.load()
	if err != nil {
		log.ErrorErr(log.CatCLI, "Reload failed", err)
		m.message = "reload failed: " + err.Error()
		return
	}
	m.replace(text)
	m.message = "reloaded"
}

// replace swaps in new document text, keeping the cursor as close as the
// new text allows. The previous text stays undoable.
func (m *Model) replace(text string) {
	m.history = append(m.history, snapshot{doc: m.doc, cursor: m.cursor})
	m.doc = buffer.NewDocument(text)
	m.moveTo(buffer.Clamp(m.doc, m.cursor))
}

// resize gives the viewport whatever height the status and help lines
// leave over.
func (m *Model) resize() {
	if m.height == 0 {
		return
	}
	chrome := 1 + lipgloss.Height(m.help.View(m.keys))
	m.viewport.Height = max(1, m.height-chrome)
}

// refresh re-renders the document and scrolls the cursor into view.
func (m *Model) refresh() {
	var sel *buffer.Range
	if rng, ok := m.Selection(); ok {
		sel = &rng
	}
	m.viewport.SetContent(preview.Page(m.doc, sel, m.cursor, preview.Options{Width: m.width}))

	switch {
	case m.cursor.Line < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor.Line)
	case m.cursor.Line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor.Line - m.viewport.Height + 1)
	}
}

// View renders the document, the status line and the help.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.statusLine(),
		m.help.View(m.keys),
	)
}

func (m Model) statusLine() string {
	parts := []string{cursorPosStyle.Render(m.cursor.String())}
	switch {
	case len(m.matcher.Pending()) > 0:
		parts = append(parts, strings.Join(m.matcher.Pending(), "")+"…")
	case m.last == nil:
	case m.last.status == motion.StatusNoMatch:
		parts = append(parts, noMatchStyle.Render(m.last.keys+": no motion"))
	case !m.last.ok:
		parts = append(parts, fmt.Sprintf("%s → %s: no range here", m.last.keys, motionStyle.Render(m.last.motion)))
	default:
		parts = append(parts, fmt.Sprintf("%s → %s %s", m.last.keys, motionStyle.Render(m.last.motion), m.last.rng))
	}
	if m.message != "" {
		parts = append(parts, messageStyle.Render(m.message))
	}

	line := strings.Join(parts, "  ")
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

// Cursor returns the cursor position.
func (m Model) Cursor() buffer.Position { return m.cursor }

// Text returns the current document text.
func (m Model) Text() string { return buffer.Text(m.doc) }

// Selection returns the range of the last resolved motion, if any.
func (m Model) Selection() (buffer.Range, bool) {
	if m.last == nil || !m.last.ok {
		return buffer.Range{}, false
	}
	return m.last.rng, true
}
