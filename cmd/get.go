// Package cmd implements the command-line interface for mediadex.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mediadex-cli/mediadex/color"
	"github.com/mediadex-cli/mediadex/icon"
	"github.com/mediadex-cli/mediadex/notes"
	"github.com/mediadex-cli/mediadex/open"
	"github.com/mediadex-cli/mediadex/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringP("from", "F", "", "The metadata source that owns the identifier")
	getCmd.Flags().StringP("id", "i", "", "The source-scoped record identifier")
	lo.Must0(getCmd.MarkFlagRequired("from"))
	lo.Must0(getCmd.MarkFlagRequired("id"))
	lo.Must0(getCmd.RegisterFlagCompletionFunc("from", completionSourceNames))

	getCmd.Flags().BoolP("json", "j", false, "Print the detailed record as a JSON object instead of writing a note")
	getCmd.Flags().BoolP("no-notes", "N", false, "Suppress markdown note emission")
	getCmd.Flags().BoolP("open", "o", false, "Open the written note with the system default application")

	getCmd.SetOut(os.Stdout)
}

// getCmd fetches one fully populated record by source and identifier,
// bypassing the title search entirely.
var getCmd = &cobra.Command{
	Use:     "get",
	Short:   "Fetch a detailed record directly by source and identifier",
	Example: "  mediadex get --from OMDbAPI --id tt1160419",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			from = lo.Must(cmd.Flags().GetString("from"))
			id   = lo.Must(cmd.Flags().GetString("id"))
		)

		record, err := reg.QueryDetailedInfoByID(context.Background(), from, id)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			fields, err := record.Flatten()
			handleErr(err)
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(fields))
			return
		}

		if lo.Must(cmd.Flags().GetBool("no-notes")) {
			fmt.Printf("%s found %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(record.Base().String()))
			return
		}

		writer, err := notes.NewWriter()
		handleErr(err)

		path, err := writer.Write(record)
		handleErr(err)

		fmt.Printf("%s wrote %s\n", icon.Get(icon.Note), style.Fg(color.Yellow)(path))

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(path))
		}
	},
}
