package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vimotion/internal/config"
	"github.com/zjrosen/vimotion/internal/motion"
	"github.com/zjrosen/vimotion/internal/presentation"
)

func TestSplitKeys(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "w", want: []string{"w"}},
		{in: "gg", want: []string{"g", "g"}},
		{in: "i(", want: []string{"i", "("}},
		{in: "f<esc>", want: []string{"f", "<esc>"}},
		{in: "a<", want: []string{"a", "<"}},
		{in: "i<>", want: []string{"i", "<", ">"}},
		{in: "f<a b>", want: []string{"f", "<", "a", " ", "b", ">"}},
		{in: "f👍🏽", want: []string{"f", "👍🏽"}},
		{in: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, splitKeys(tt.in))
		})
	}
}

func TestFeedKeys(t *testing.T) {
	reg := motion.NewDefaultRegistry()

	keys, err := feedKeys(reg, "i(")
	require.NoError(t, err)
	require.Equal(t, []string{"i", "("}, keys)

	keys, err = feedKeys(reg, "g")
	require.NoError(t, err, "an incomplete sequence resolves as pending")
	require.Equal(t, []string{"g"}, keys)

	_, err = feedKeys(reg, "wx")
	require.ErrorContains(t, err, "left over")

	_, err = feedKeys(reg, "")
	require.ErrorContains(t, err, "empty")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunResolve_JSON(t *testing.T) {
	path := writeFile(t, "doc.html", "<div><span>text</span></div>\n")
	var out bytes.Buffer

	err := runResolve(t.Context(), nil, &out, config.Defaults(), resolveOptions{
		File:   path,
		Col:    12,
		Format: "json",
	}, []string{"it", "at", "f<esc>"})
	require.NoError(t, err)

	var results []presentation.ResolutionDTO
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 3)
	require.Equal(t, "text", results[0].Range.Text)
	require.Equal(t, "<span>text</span>", results[1].Range.Text)
	require.Equal(t, "no-match", results[2].Status)
	require.Nil(t, results[2].Range)
}

func TestRunResolve_TextWithDiff(t *testing.T) {
	var out bytes.Buffer

	err := runResolve(t.Context(), strings.NewReader("foo(bar(baz)qux)end\n"), &out, config.Defaults(), resolveOptions{
		File:    "-",
		Col:     9,
		Format:  "text",
		Diff:    true,
		NoColor: true,
	}, []string{"i("})
	require.NoError(t, err)

	text := ansi.Strip(out.String())
	require.Contains(t, text, "motion: bracket.inner.paren")
	require.Contains(t, text, "range: [0:8, 0:11) charwise")
	require.Contains(t, text, "1 foo(bar(baz)qux)end")
	require.Contains(t, text, "after delete:")
	require.NotContains(t, out.String(), "\x1b[31m", "--no-color strips the diff")
}

func TestRunResolve_Markdown(t *testing.T) {
	var out bytes.Buffer

	err := runResolve(t.Context(), strings.NewReader("foo(bar(baz)qux)end\n"), &out, config.Defaults(), resolveOptions{
		File:    "-",
		Col:     9,
		Format:  "md",
		NoColor: true,
	}, []string{"i(", "zz"})
	require.NoError(t, err)

	text := ansi.Strip(out.String())
	require.Contains(t, text, "i(")
	require.Contains(t, text, "status: matched")
	require.Contains(t, text, "bracket.inner.paren")
	require.Contains(t, text, "range: [0:8, 0:11) charwise")
	require.Contains(t, text, "baz")
	require.Contains(t, text, "range: none")
}

func TestRunResolve_NestedIndentFromConfig(t *testing.T) {
	path := writeFile(t, "block.py", "def f():\n    if x:\n        a()\n    b()\n")
	c := config.Defaults()
	c.Motion.IndentMode = "nested"
	var out bytes.Buffer

	err := runResolve(t.Context(), nil, &out, c, resolveOptions{File: path, Line: 1, Format: "json"}, []string{"ii"})
	require.NoError(t, err)

	var results []presentation.ResolutionDTO
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Equal(t, 1, results[0].Range.Start.Line)
	require.Equal(t, 3, results[0].Range.End.Line)
}

func TestRunResolve_Errors(t *testing.T) {
	var out bytes.Buffer
	c := config.Defaults()

	err := runResolve(t.Context(), nil, &out, c, resolveOptions{File: "x", Format: "xml"}, []string{"w"})
	require.ErrorContains(t, err, "unknown format")

	err = runResolve(t.Context(), nil, &out, c, resolveOptions{File: filepath.Join(t.TempDir(), "missing"), Format: "text"}, []string{"w"})
	require.ErrorContains(t, err, "reading")

	err = runResolve(t.Context(), nil, &out, c, resolveOptions{File: "-", Line: -1, Format: "text"}, []string{"w"})
	require.ErrorContains(t, err, "negative")

	err = runResolve(t.Context(), strings.NewReader("abc"), &out, c, resolveOptions{File: "-", Format: "text", Watch: true}, []string{"w"})
	require.ErrorContains(t, err, "--watch needs a file")
}

func TestWatchAndRender_RerendersOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o600))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	rendered := make(chan struct{}, 8)
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- watchAndRender(ctx, &out, path, func() error {
			rendered <- struct{}{}
			return nil
		})
	}()

	// The watcher may not be registered before the first write.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("abc def"), 0o600)
		select {
		case <-rendered:
			return true
		default:
			return false
		}
	}, 5*time.Second, 300*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	require.Contains(t, out.String(), "---")
}

func TestRunResolve_TracesToFile(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	c := config.Defaults()
	c.Tracing.Enabled = true
	c.Tracing.FilePath = tracePath
	var out bytes.Buffer

	err := runResolve(t.Context(), strings.NewReader("abc def"), &out, c, resolveOptions{File: "-", Format: "json"}, []string{"w"})
	require.NoError(t, err)

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"motion.resolve"`)
	require.Contains(t, string(data), `"motion.apply"`)
}

func TestLoadConfig_Explicit(t *testing.T) {
	path := writeFile(t, "config.yaml", "motion:\n  tab_width: 2\n")

	c, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Motion.TabWidth)
	require.Equal(t, "same", c.Motion.IndentMode)
}

func TestLoadConfig_ExplicitMissing(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "reading config")
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeFile(t, "config.yaml", "motion:\n  indent_mode: sideways\n")

	_, err := loadConfig(viper.New(), path)
	require.ErrorContains(t, err, "motion.indent_mode")
}

func TestNewPlayModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("foo(bar)\nbaz\n"), 0o600))

	m, err := newPlayModel(t.Context(), nil, config.Defaults(), playOptions{File: path, Line: 1, Col: 9, Follow: true})
	require.NoError(t, err)
	require.Equal(t, "foo(bar)\nbaz", m.Text())
	require.Equal(t, 1, m.Cursor().Line)
	require.Equal(t, 3, m.Cursor().Col, "cursor is clamped")
	require.NotNil(t, m.Init(), "following subscribes to changes")

	m, err = newPlayModel(t.Context(), strings.NewReader("abc\n"), config.Defaults(), playOptions{File: "-"})
	require.NoError(t, err)
	require.Equal(t, "abc", m.Text())
	require.Nil(t, m.Init())
}

func TestNewPlayModel_Errors(t *testing.T) {
	_, err := newPlayModel(t.Context(), strings.NewReader("abc"), config.Defaults(), playOptions{File: "-", Follow: true})
	require.ErrorContains(t, err, "--follow needs a file")

	_, err = newPlayModel(t.Context(), nil, config.Defaults(), playOptions{File: "x", Col: -1})
	require.ErrorContains(t, err, "negative")

	_, err = newPlayModel(t.Context(), nil, config.Defaults(), playOptions{File: filepath.Join(t.TempDir(), "missing")})
	require.ErrorContains(t, err, "reading")
}

func TestMotionsCommand(t *testing.T) {
	path := writeFile(t, "config.yaml", config.DefaultConfigTemplate())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", path, "motions", "--format", "json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	var motions []presentation.MotionDTO
	require.NoError(t, json.Unmarshal(out.Bytes(), &motions))
	require.Len(t, motions, len(motion.Defaults()))
}
