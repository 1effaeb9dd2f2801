package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/vimotion/internal/presentation"
)

var motionsFormat string

var motionsCmd = &cobra.Command{
	Use:   "motions",
	Short: "List the registered motions and text objects",
	Long: `List every registered motion in match order. When two motions could both
complete on the same keys, the one listed first wins.

Examples:
  vimotion motions
  vimotion motions --format json | jq '.[].keys'
  vimotion motions --format markdown`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := presentation.ParseFormat(motionsFormat)
		if err != nil {
			return err
		}
		reg := newRegistry(cfg)
		return presentation.NewFormatter(cmd.OutOrStdout(), format).
			FormatMotions(presentation.FromDefinitions(reg.Definitions()))
	},
}

func init() {
	motionsCmd.Flags().StringVar(&motionsFormat, "format", "text", "output format: text, yaml, json or markdown")
	rootCmd.AddCommand(motionsCmd)
}
