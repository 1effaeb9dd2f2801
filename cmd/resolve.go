package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/vimotion/internal/buffer"
	"github.com/zjrosen/vimotion/internal/cachemanager"
	"github.com/zjrosen/vimotion/internal/config"
	"github.com/zjrosen/vimotion/internal/log"
	"github.com/zjrosen/vimotion/internal/motion"
	"github.com/zjrosen/vimotion/internal/presentation"
	"github.com/zjrosen/vimotion/internal/preview"
	"github.com/zjrosen/vimotion/internal/textscan"
	"github.com/zjrosen/vimotion/internal/tracing"
	"github.com/zjrosen/vimotion/internal/watcher"
)

// resolveOptions holds the resolve command's flags.
type resolveOptions struct {
	File    string
	Line    int
	Col     int
	Format  string
	Diff    bool
	Width   int
	NoColor bool
	Watch   bool
}

var resolveOpts resolveOptions

var resolveCmd = &cobra.Command{
	Use:   "resolve KEYS...",
	Short: "Resolve key sequences to the range an operator would act on",
	Long: `Resolve one or more motion key sequences at a cursor position in a file.

Each KEYS argument is fed to the matcher one key at a time. Named keys are
written in angle brackets, e.g. "f<esc>". Lines and columns are 0-based;
columns count grapheme clusters.

Examples:
  # Inner parentheses at line 3, column 12
  vimotion resolve --file main.go --line 3 --col 12 'i('

  # Several motions at once, as YAML
  vimotion resolve -f index.html -l 10 --col 4 --format yaml it at

  # Show the file after deleting a paragraph
  vimotion resolve -f notes.md -l 0 --diff '}'

  # Re-resolve every time the file is saved
  vimotion resolve -f main.go -l 3 --col 12 --watch 'i{'

  # Read the document from stdin
  echo 'x = "hi"' | vimotion resolve -f - --col 6 'i"'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cfg, resolveOpts, args)
	},
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveOpts.File, "file", "f", "", "file to resolve against (- for stdin)")
	resolveCmd.Flags().IntVarP(&resolveOpts.Line, "line", "l", 0, "cursor line (0-based)")
	resolveCmd.Flags().IntVar(&resolveOpts.Col, "col", 0, "cursor column in graphemes (0-based)")
	resolveCmd.Flags().StringVar(&resolveOpts.Format, "format", "text", "output format: text, yaml, json or markdown")
	resolveCmd.Flags().BoolVar(&resolveOpts.Diff, "diff", false, "show the document after deleting the range (text format)")
	resolveCmd.Flags().IntVar(&resolveOpts.Width, "width", 0, "truncate highlighted lines (and wrap markdown) to this many cells")
	resolveCmd.Flags().BoolVar(&resolveOpts.NoColor, "no-color", false, "disable colored output")
	resolveCmd.Flags().BoolVarP(&resolveOpts.Watch, "watch", "w", false, "re-resolve whenever the file changes")
	_ = resolveCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(ctx context.Context, stdin io.Reader, out io.Writer, c config.Config, opts resolveOptions, sequences []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format, err := presentation.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	if opts.Line < 0 || opts.Col < 0 {
		return fmt.Errorf("cursor must not be negative, got %d:%d", opts.Line, opts.Col)
	}
	if opts.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if opts.Watch && opts.File == "-" {
		return fmt.Errorf("--watch needs a file, not stdin")
	}

	provider, err := tracing.NewProvider(c.TracingConfig())
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.ErrorErr(log.CatTrace, "Failed to flush traces", err)
		}
	}()

	reg := newRegistry(c, motion.WithTracer(provider.Tracer()))
	mdStyle := ""
	if opts.NoColor {
		mdStyle = "ascii"
	}
	formatter := presentation.NewFormatter(out, format).WithMarkdown(opts.Width, mdStyle)
	render := func() error {
		text, err := readDocument(stdin, opts.File)
		if err != nil {
			return err
		}
		results, err := resolveAll(ctx, reg, buffer.NewDocument(text), format, opts, sequences)
		if err != nil {
			return err
		}
		return formatter.FormatResolutions(results)
	}

	if err := render(); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}
	return watchAndRender(ctx, out, opts.File, render)
}

// resolveAll resolves each key sequence at the cursor.
func resolveAll(ctx context.Context, reg *motion.Registry, doc buffer.Document, format presentation.Format, opts resolveOptions, sequences []string) ([]presentation.ResolutionDTO, error) {
	cursor := buffer.Clamp(doc, buffer.Position{Line: opts.Line, Col: opts.Col})
	results := make([]presentation.ResolutionDTO, 0, len(sequences))
	for _, seq := range sequences {
		keys, err := feedKeys(reg, seq)
		if err != nil {
			return nil, err
		}
		res, rng, ok := reg.Resolve(ctx, doc, keys, cursor)
		dto := presentation.FromResolution(strings.Join(keys, ""), doc, cursor, res, rng, ok)
		if ok && format == presentation.FormatText {
			dto.Highlight = preview.Highlight(doc, rng, preview.Options{Width: opts.Width})
			if opts.Diff {
				dto.Diff = preview.DeletionDiff(doc, rng)
				if opts.NoColor {
					dto.Diff = ansi.Strip(dto.Diff)
				}
			}
		}
		results = append(results, dto)
	}
	return results, nil
}

// watchAndRender calls render after every change to path until ctx is
// cancelled or the process is interrupted.
func watchAndRender(ctx context.Context, out io.Writer, path string, render func() error) error {
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	log.Info(log.CatCLI, "Watching for changes", "path", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			log.Debug(log.CatCLI, "Document changed", "path", path)
			if _, err := fmt.Fprintln(out, "---"); err != nil {
				return err
			}
			if err := render(); err != nil {
				log.ErrorErr(log.CatCLI, "Resolve after change failed", err, "path", path)
				if _, err := fmt.Fprintf(out, "error: %v\n", err); err != nil {
					return err
				}
			}
		}
	}
}

// newRegistry builds the default registry with options from c.
func newRegistry(c config.Config, opts ...motion.Option) *motion.Registry {
	opts = append(opts, motion.WithOptions(c.MotionOptions()))
	if ttl := c.Motion.TagCacheTTL; ttl > 0 {
		tags := cachemanager.NewInMemoryCacheManager[string, []textscan.TagRecord]("tags", ttl, 2*ttl)
		opts = append(opts, motion.WithTagCache(tags, ttl))
	}
	return motion.NewDefaultRegistry(opts...)
}

// feedKeys feeds seq to a matcher key by key and returns the keys consumed
// once the matcher stops asking for more.
func feedKeys(reg *motion.Registry, seq string) ([]string, error) {
	all := splitKeys(seq)
	if len(all) == 0 {
		return nil, fmt.Errorf("empty key sequence")
	}

	m := motion.NewMatcher(reg)
	for i, k := range all {
		res := m.Feed(k)
		if res.Status == motion.StatusPending {
			continue
		}
		if rest := all[i+1:]; len(rest) > 0 {
			return nil, fmt.Errorf("keys %q: %q left over after %s", seq, strings.Join(rest, ""), res.Status)
		}
		log.Debug(log.CatCLI, "Key sequence settled", "keys", seq, "status", res.Status)
		return all, nil
	}
	log.Debug(log.CatCLI, "Key sequence incomplete", "keys", seq)
	return all, nil
}

// splitKeys splits a key argument into keys: one grapheme each, except
// that <name> spells a single named key.
func splitKeys(seq string) []string {
	graphemes := buffer.Graphemes(seq)
	var keys []string
	for i := 0; i < len(graphemes); i++ {
		if graphemes[i] == "<" {
			if end := namedKeyEnd(graphemes, i); end > 0 {
				keys = append(keys, strings.Join(graphemes[i:end+1], ""))
				i = end
				continue
			}
		}
		keys = append(keys, graphemes[i])
	}
	return keys
}

// namedKeyEnd returns the index of the '>' closing a named key starting at
// i, or -1.
func namedKeyEnd(graphemes []string, i int) int {
	for j := i + 1; j < len(graphemes); j++ {
		g := graphemes[j]
		if g == ">" {
			if j-i < 2 {
				return -1
			}
			return j
		}
		r := []rune(g)
		if len(r) != 1 || !(unicode.IsLetter(r[0]) || unicode.IsDigit(r[0]) || r[0] == '-') {
			return -1
		}
	}
	return -1
}

func readDocument(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-chosen input file
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}
