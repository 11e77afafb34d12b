// Package cmd implements the command-line interface for mediadex.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mediadex-cli/mediadex/icon"
	"github.com/mediadex-cli/mediadex/remap"
	"github.com/mediadex-cli/mediadex/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(remapCmd)
}

// remapCmd provides a parent command for managing field remapping rules.
var remapCmd = &cobra.Command{
	Use:   "remap",
	Short: "Manage the field remapping rules applied to emitted notes",
}

func init() {
	remapCmd.AddCommand(remapCheckCmd)
	remapCmd.AddCommand(remapShowCmd)
	remapShowCmd.SetOut(os.Stdout)
}

// remapCheckCmd validates the persisted remapping rules.
var remapCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the persisted remapping rules",
	Run: func(cmd *cobra.Command, args []string) {
		rules, err := remap.Load()
		handleErr(err)

		total := lo.Sum(lo.Map(lo.Values(rules), func(r []remap.Rule, _ int) int {
			return len(r)
		}))

		fmt.Printf("%s %s valid\n", icon.Get(icon.Success), util.Quantify(total, "rule", "rules"))
	},
}

// remapShowCmd displays the persisted remapping rules as JSON.
var remapShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the persisted remapping rules",
	Run: func(cmd *cobra.Command, args []string) {
		rules, err := remap.Load()
		handleErr(err)

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(rules))
	},
}
