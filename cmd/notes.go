// Package cmd implements the command-line interface for mediadex.
package cmd

import (
	"encoding/json"
	"os"

	"github.com/mediadex-cli/mediadex/notes"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(notesCmd)
}

// notesCmd provides a parent command for working with emitted markdown notes.
var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Work with emitted markdown notes",
}

func init() {
	notesCmd.AddCommand(notesReadCmd)
	notesReadCmd.SetOut(os.Stdout)
}

// notesReadCmd parses a note's frontmatter back into canonical record fields,
// undoing any remap rules that were applied on the way out.
var notesReadCmd = &cobra.Command{
	Use:     "read [file]",
	Short:   "Parse a note's frontmatter back into canonical record fields",
	Args:    cobra.ExactArgs(1),
	Example: "  mediadex notes read ~/notes/movie_-_Dune_(2021).md",
	Run: func(cmd *cobra.Command, args []string) {
		writer, err := notes.NewWriter()
		handleErr(err)

		_, fields, err := writer.ReadBack(args[0])
		handleErr(err)

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(fields))
	},
}
