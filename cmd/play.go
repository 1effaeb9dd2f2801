package cmd

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/vimotion/internal/buffer"
	"github.com/zjrosen/vimotion/internal/config"
	"github.com/zjrosen/vimotion/internal/play"
	"github.com/zjrosen/vimotion/internal/pubsub"
)

type playOptions struct {
	File   string
	Line   int
	Col    int
	Follow bool
}

var playOpts playOptions

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Try motions interactively against a file",
	Long: `Open a file in an interactive playground. Type motion keys to see the
range they resolve to; arrow keys move the cursor and ctrl+x deletes the
highlighted range. Press f1 for all keybindings.

Examples:
  vimotion play -f main.go -l 10
  vimotion play -f notes.md --follow`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		model, err := newPlayModel(ctx, cmd.InOrStdin(), cfg, playOpts)
		if err != nil {
			return err
		}
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		_, err = p.Run()
		return err
	},
}

func init() {
	playCmd.Flags().StringVarP(&playOpts.File, "file", "f", "", "document to open (\"-\" reads stdin)")
	playCmd.Flags().IntVarP(&playOpts.Line, "line", "l", 0, "starting cursor line (0-based)")
	playCmd.Flags().IntVar(&playOpts.Col, "col", 0, "starting cursor column in graphemes (0-based)")
	playCmd.Flags().BoolVar(&playOpts.Follow, "follow", false, "reload the document when the file changes")
	_ = playCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(playCmd)
}

// newPlayModel reads the document and wires reload and file following.
// Following stops when ctx is cancelled.
func newPlayModel(ctx context.Context, stdin io.Reader, c config.Config, opts playOptions) (play.Model, error) {
	if opts.Line < 0 || opts.Col < 0 {
		return play.Model{}, fmt.Errorf("cursor must not be negative, got %d:%d", opts.Line, opts.Col)
	}
	if opts.Follow && opts.File == "-" {
		return play.Model{}, fmt.Errorf("--follow needs a file, not stdin")
	}

	text, err := readDocument(stdin, opts.File)
	if err != nil {
		return play.Model{}, err
	}

	pc := play.Config{
		Registry: newRegistry(c),
		Text:     text,
		Cursor:   buffer.Position{Line: opts.Line, Col: opts.Col},
	}
	if opts.File != "-" {
		path := opts.File
		pc.Load = func() (string, error) { return play.ReadFile(path) }
	}
	if opts.Follow {
		broker := pubsub.NewBroker[string]()
		context.AfterFunc(ctx, broker.Close)
		if err := play.Follow(ctx, opts.File, broker); err != nil {
			return play.Model{}, fmt.Errorf("following %s: %w", opts.File, err)
		}
		pc.Events = broker
	}
	return play.New(ctx, pc), nil
}
