// Package cmd implements the command-line interface for mediadex.
package cmd

import (
	"os"
	"strings"

	"github.com/mediadex-cli/mediadex/api"
	"github.com/mediadex-cli/mediadex/auth"
	"github.com/mediadex-cli/mediadex/color"
	"github.com/mediadex-cli/mediadex/icon"
	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/mediadex-cli/mediadex/style"
	"github.com/mediadex-cli/mediadex/util"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// credentialKeys maps each key-requiring source to the viper keys holding its
// plaintext fallback credentials. Sources absent from this map are keyless.
var credentialKeys = map[string][]string{
	"OMDbAPI":      {key.OMDbAPIKey},
	"MobyGamesAPI": {key.MobyGamesAPIKey},
	"GiantBombAPI": {key.GiantBombAPIKey},
	"ComicVineAPI": {key.ComicVineAPIKey},
	"IGDBAPI":      {key.IGDBClientID, key.IGDBSecret},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

// sourcesCmd provides a parent command for inspecting metadata sources.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Inspect the registered metadata sources",
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)

	sourcesListCmd.Flags().BoolP("raw", "r", false, "Suppress descriptions and metadata in the output")
	sourcesListCmd.Flags().StringSliceP("type", "t", []string{}, "Display only sources producing the given media types")
	lo.Must0(sourcesListCmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(media.Types(), func(t media.Type, _ int) string {
			return string(t)
		}), cobra.ShellCompDirectiveNoFileComp
	}))

	sourcesListCmd.SetOut(os.Stdout)
}

// sourcesListCmd displays a summary of all registered metadata sources.
var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display a summary of all registered metadata sources",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			raw      = lo.Must(cmd.Flags().GetBool("raw"))
			rawTypes = lo.Must(cmd.Flags().GetStringSlice("type"))
		)

		wanted := lo.FilterMap(rawTypes, func(s string, _ int) (media.Type, bool) {
			return media.ParseType(s)
		})

		apis := lo.Filter(reg.APIs(), func(a api.API, _ int) bool {
			return len(wanted) == 0 || a.Info().HasTypeOverlap(wanted)
		})

		if raw {
			for _, a := range apis {
				cmd.Println(a.Info().Name)
			}
			return
		}

		width, _, err := util.TerminalSize()
		if err != nil || width <= 0 || width > 100 {
			width = 100
		}

		nameStyle := style.New().Foreground(color.HiBlue).Bold(true).Render
		typeStyle := style.Fg(color.Yellow)

		for i, a := range apis {
			info := a.Info()

			header := nameStyle(info.Name)
			if _, keyed := credentialKeys[info.Name]; keyed {
				if sourceConfigured(info.Name) {
					header += " " + style.Fg(color.Green)("(credentials set)")
				} else {
					header += " " + style.Fg(color.Red)("(credentials missing)")
				}
			}
			cmd.Println(header)

			types := lo.Map(info.Types, func(t media.Type, _ int) string {
				return typeStyle(string(t))
			})
			cmd.Println(strings.Join(types, " "))

			cmd.Println(wrap.String(info.Description, width))
			cmd.Printf("%s %s\n", icon.Get(icon.Link), style.Faint(info.URL))

			if i < len(apis)-1 {
				cmd.Println()
			}
		}
	},
}

// sourceConfigured reports whether every credential the source needs resolves
// through the keyring or its plaintext fallback.
func sourceConfigured(name string) bool {
	return lo.EveryBy(credentialKeys[name], func(viperKey string) bool {
		return auth.Get(name, viperKey) != ""
	})
}
