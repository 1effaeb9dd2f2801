package play

import (
	"bytes"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vimotion/internal/buffer"
	"github.com/zjrosen/vimotion/internal/motion"
	"github.com/zjrosen/vimotion/internal/pubsub"
)

func pos(line, col int) buffer.Position {
	return buffer.Position{Line: line, Col: col}
}

func newModel(t *testing.T, cfg Config) Model {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	if cfg.Registry == nil {
		cfg.Registry = motion.NewDefaultRegistry()
	}
	return New(t.Context(), cfg)
}

func typeKeys(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func press(m Model, k tea.KeyType) Model {
	next, _ := m.Update(tea.KeyMsg{Type: k})
	return next.(Model)
}

func status(m Model) string {
	return ansi.Strip(m.statusLine())
}

func TestModel_ResolvesTypedTextObject(t *testing.T) {
	m := newModel(t, Config{Text: "foo(bar baz)", Cursor: pos(0, 5)})

	m = typeKeys(m, "i(")

	rng, ok := m.Selection()
	require.True(t, ok)
	require.Equal(t, buffer.Charwise(pos(0, 4), pos(0, 11)), rng)
	require.Contains(t, status(m), "i( → bracket.inner.paren")
	require.Contains(t, ansi.Strip(m.View()), "1 foo(bar baz)")
}

func TestModel_PendingAndEscape(t *testing.T) {
	m := newModel(t, Config{Text: "foo(bar)", Cursor: pos(0, 5)})

	m = typeKeys(m, "i")
	require.Contains(t, status(m), "i…")
	_, ok := m.Selection()
	require.False(t, ok)

	m = press(m, tea.KeyEsc)
	require.NotContains(t, status(m), "i…")

	m = typeKeys(m, "(")
	require.Contains(t, status(m), "(: no motion")
}

func TestModel_MotionWithoutRange(t *testing.T) {
	m := newModel(t, Config{Text: "foo bar"})

	m = typeKeys(m, "fq")

	_, ok := m.Selection()
	require.False(t, ok)
	require.Contains(t, status(m), "fq → find.forward: no range here")
}

func TestModel_PastedKeysFeedOneByOne(t *testing.T) {
	m := newModel(t, Config{Text: "foo bar", Cursor: pos(0, 5)})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("iw"), Paste: true})
	m = next.(Model)

	rng, ok := m.Selection()
	require.True(t, ok)
	require.Equal(t, buffer.Charwise(pos(0, 4), pos(0, 7)), rng)
}

func TestModel_DeleteAndUndo(t *testing.T) {
	m := newModel(t, Config{Text: "foo(bar baz)", Cursor: pos(0, 5)})

	m = press(m, tea.KeyCtrlX)
	require.Contains(t, status(m), "no range to delete")

	m = typeKeys(m, "i(")
	m = press(m, tea.KeyCtrlX)
	require.Equal(t, "foo()", m.Text())
	require.Equal(t, pos(0, 4), m.Cursor())
	_, ok := m.Selection()
	require.False(t, ok, "deleting clears the selection")

	m = press(m, tea.KeyCtrlZ)
	require.Equal(t, "foo(bar baz)", m.Text())
	require.Equal(t, pos(0, 5), m.Cursor())

	m = press(m, tea.KeyCtrlZ)
	require.Contains(t, status(m), "nothing to undo")
}

func TestModel_DeleteLinewise(t *testing.T) {
	text := "a\n\nb\nc\n\nd"
	m := newModel(t, Config{Text: text, Cursor: pos(2, 0)})

	m = typeKeys(m, "}")
	m = press(m, tea.KeyCtrlX)
	require.Equal(t, "a\n\nd", m.Text())
	require.Equal(t, pos(2, 0), m.Cursor())
}

func TestModel_Jump(t *testing.T) {
	m := newModel(t, Config{Text: "foo bar baz"})

	m = press(m, tea.KeyEnter)
	require.Contains(t, status(m), "no range to jump across")

	m = typeKeys(m, "w")
	m = press(m, tea.KeyEnter)
	require.Equal(t, pos(0, 4), m.Cursor())

	m = typeKeys(m, "b")
	m = press(m, tea.KeyEnter)
	require.Equal(t, pos(0, 0), m.Cursor())
}

func TestModel_ArrowKeys(t *testing.T) {
	m := newModel(t, Config{Text: "abc\nde"})

	m = press(m, tea.KeyUp)
	require.Equal(t, pos(0, 0), m.Cursor())

	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyRight)
	require.Equal(t, pos(0, 3), m.Cursor())

	m = press(m, tea.KeyDown)
	require.Equal(t, pos(1, 2), m.Cursor(), "column clamps to the shorter line")

	m = press(m, tea.KeyDown)
	require.Equal(t, pos(1, 2), m.Cursor())

	m = press(m, tea.KeyLeft)
	require.Equal(t, pos(1, 1), m.Cursor())
}

func TestModel_ArrowKeyClearsSelection(t *testing.T) {
	m := newModel(t, Config{Text: "foo bar"})

	m = typeKeys(m, "w")
	m = press(m, tea.KeyRight)

	_, ok := m.Selection()
	require.False(t, ok)
}

func TestModel_Reload(t *testing.T) {
	m := newModel(t, Config{Text: "abc"})
	m = press(m, tea.KeyCtrlR)
	require.Contains(t, status(m), "reload unavailable")

	texts := []string{"first line\nsecond"}
	var loadErr error
	m = newModel(t, Config{
		Text:   "abc",
		Cursor: pos(0, 2),
		Load: func() (string, error) {
			if loadErr != nil {
				return "", loadErr
			}
			return texts[0], nil
		},
	})

	m = press(m, tea.KeyCtrlR)
	require.Equal(t, "first line\nsecond", m.Text())
	require.Equal(t, pos(0, 2), m.Cursor())
	require.Contains(t, status(m), "reloaded")

	loadErr = errors.New("permission denied")
	m = press(m, tea.KeyCtrlR)
	require.Equal(t, "first line\nsecond", m.Text())
	require.Contains(t, status(m), "reload failed: permission denied")
}

func TestModel_DocumentEvents(t *testing.T) {
	broker := pubsub.NewBroker[string]()
	defer broker.Close()
	m := newModel(t, Config{Text: "one two", Cursor: pos(0, 6), Events: broker})
	require.NotNil(t, m.Init())

	next, cmd := m.Update(pubsub.Event[string]{Type: pubsub.ChangedEvent, Payload: "one"})
	m = next.(Model)
	require.NotNil(t, cmd, "keeps listening")
	require.Equal(t, "one", m.Text())
	require.Equal(t, pos(0, 3), m.Cursor())

	next, _ = m.Update(pubsub.Event[string]{Type: pubsub.FailedEvent, Payload: "gone"})
	m = next.(Model)
	require.Equal(t, "one", m.Text())
	require.Contains(t, status(m), "reload failed: gone")
}

func TestModel_NoEventsWithoutSubscriber(t *testing.T) {
	m := newModel(t, Config{Text: "abc"})
	require.Nil(t, m.Init())
}

func TestModel_ScrollsCursorIntoView(t *testing.T) {
	text := "0\n1\n2\n3\n4\n5\n6\n7\n8\n9"
	m := newModel(t, Config{Text: text})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 5})
	m = next.(Model)
	require.Greater(t, m.viewport.Height, 0)

	m = typeKeys(m, "G")
	m = press(m, tea.KeyEnter)
	require.Equal(t, 9, m.Cursor().Line)
	require.Contains(t, ansi.Strip(m.viewport.View()), "10 9")
}

func TestModel_HelpToggle(t *testing.T) {
	m := newModel(t, Config{Text: "abc"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = next.(Model)
	short := m.viewport.Height

	m = press(m, tea.KeyF1)
	require.True(t, m.help.ShowAll)
	require.Less(t, m.viewport.Height, short)
	require.Contains(t, ansi.Strip(m.View()), "undo delete")
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t, Config{Text: "abc"})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPlayground_Program(t *testing.T) {
	m := newModel(t, Config{Text: "foo(bar baz)", Cursor: pos(0, 5)})
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(60, 12))

	tm.Type("i(")
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("bracket.inner.paren"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlX})
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.True(t, ok)
	require.Equal(t, "foo()", final.Text())
}
