// Package cmd implements the command-line interface for mediadex.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// schemaRecords maps each record type tag to a zero value of its variant.
var schemaRecords = map[media.Type]any{
	media.TypeMovie:        &media.Movie{},
	media.TypeSeries:       &media.Series{},
	media.TypeSeason:       &media.Season{},
	media.TypeGame:         &media.Game{},
	media.TypeBook:         &media.Book{},
	media.TypeComicManga:   &media.ComicManga{},
	media.TypeBoardGame:    &media.BoardGame{},
	media.TypeMusicRelease: &media.MusicRelease{},
	media.TypeWiki:         &media.Wiki{},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringP("type", "t", "", "Emit the schema for a single record variant instead of all of them")
	lo.Must0(schemaCmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(media.Types(), func(t media.Type, _ int) string {
			return string(t)
		}), cobra.ShellCompDirectiveNoFileComp
	}))

	schemaCmd.SetOut(os.Stdout)
}

// schemaCmd emits JSON schemas for the record variants, for consumers
// validating exported records or notes frontmatter.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Emit JSON schemas for the media record variants",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			if name == "" {
				return name
			}

			return filepath.Base(t.PkgPath()) + "." + name
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())

		if raw := lo.Must(cmd.Flags().GetString("type")); raw != "" {
			t, ok := media.ParseType(raw)
			if !ok {
				handleErr(fmt.Errorf("unknown media type: %s", raw))
			}

			handleErr(encoder.Encode(reflector.Reflect(schemaRecords[t])))
			return
		}

		for _, t := range media.Types() {
			handleErr(encoder.Encode(reflector.Reflect(schemaRecords[t])))
		}
	},
}
