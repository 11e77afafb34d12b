// Package cmd implements the command-line interface for mediadex.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mediadex-cli/mediadex/choice"
	"github.com/mediadex-cli/mediadex/color"
	"github.com/mediadex-cli/mediadex/icon"
	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/log"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/mediadex-cli/mediadex/notes"
	"github.com/mediadex-cli/mediadex/open"
	"github.com/mediadex-cli/mediadex/query"
	"github.com/mediadex-cli/mediadex/registry"
	"github.com/mediadex-cli/mediadex/style"
	"github.com/mediadex-cli/mediadex/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSliceP("type", "t", []string{}, "Restrict results to the given media types (e.g., movie, game, book)")
	lo.Must0(searchCmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(media.Types(), func(t media.Type, _ int) string {
			return string(t)
		}), cobra.ShellCompDirectiveNoFileComp
	}))

	searchCmd.Flags().BoolP("json", "j", false, "Print the detailed record as a JSON object instead of writing a note")
	searchCmd.Flags().BoolP("first", "f", false, "Take the top-ranked result without prompting")
	searchCmd.Flags().Bool("stubs", false, "Print the raw search results and exit without fetching details")
	searchCmd.Flags().BoolP("no-notes", "N", false, "Suppress markdown note emission")
	searchCmd.Flags().BoolP("open", "o", false, "Open the written note with the system default application")

	searchCmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}

	searchCmd.SetOut(os.Stdout)
}

// searchCmd fans a title query out to the registered metadata sources and
// resolves the hits down to one fully populated record.
var searchCmd = &cobra.Command{
	Use:     "search [title]",
	Short:   "Search the registered metadata sources by title",
	Args:    cobra.MinimumNArgs(1),
	Example: "  mediadex search dune --type movie --source OMDbAPI",
	Run: func(cmd *cobra.Command, args []string) {
		title := strings.Join(args, " ")
		handleErr(query.Remember(title, 1))

		sources := viper.GetStringSlice(key.SearchDefaultAPIs)

		eraser := util.PrintErasable(fmt.Sprintf("%s Searching for %s...", icon.Get(icon.Search), style.Fg(color.Yellow)(title)))
		records, failures, err := reg.Query(context.Background(), title, sources)
		eraser()
		handleErr(err)

		for _, failure := range failures {
			log.Error(failure)
			fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), failure.Error())
		}

		records = filterByTypes(records, lo.Must(cmd.Flags().GetStringSlice("type")))

		if viper.GetBool(key.SearchRankByRelevance) {
			registry.SortByRelevance(records, title)
		}

		if len(records) == 0 {
			handleErr(fmt.Errorf("no results for %s", title))
		}

		if lo.Must(cmd.Flags().GetBool("stubs")) {
			printStubs(cmd, records)
			return
		}

		var picker choice.Picker = &choice.SurveyPicker{}
		if lo.Must(cmd.Flags().GetBool("first")) || lo.Must(cmd.Flags().GetBool("json")) {
			picker = choice.FirstPicker{}
		}

		stub, outcome, err := picker.Pick(records)
		handleErr(err)

		switch outcome {
		case choice.Skipped:
			fmt.Printf("%s nothing selected\n", icon.Get(icon.Success))
			return
		case choice.Cancelled:
			return
		}

		record, err := reg.QueryDetailedInfo(context.Background(), stub)
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

// filterByTypes drops records whose type tag is not among the requested ones.
// An empty request keeps everything.
func filterByTypes(records []media.Record, raw []string) []media.Record {
	if len(raw) == 0 {
		return records
	}

	wanted := lo.FilterMap(raw, func(s string, _ int) (media.Type, bool) {
		return media.ParseType(s)
	})

	return lo.Filter(records, func(r media.Record, _ int) bool {
		return lo.Contains(wanted, r.Type())
	})
}

func printStubs(cmd *cobra.Command, records []media.Record) {
	typeStyle := style.Fg(color.HiBlue)
	sourceStyle := style.Faint

	for _, r := range records {
		base := r.Base()
		cmd.Printf(
			"%s %s %s\n",
			base.String(),
			typeStyle(string(r.Type())),
			sourceStyle(fmt.Sprintf("%s/%s", base.DataSource, base.ID)),
		)
	}
}
