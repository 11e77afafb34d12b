// Package cmd implements the command-line interface for mediadex.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/mediadex-cli/mediadex/color"
	"github.com/mediadex-cli/mediadex/constant"
	"github.com/mediadex-cli/mediadex/icon"
	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/log"
	"github.com/mediadex-cli/mediadex/registry"
	"github.com/mediadex-cli/mediadex/style"
	"github.com/mediadex-cli/mediadex/util"
	"github.com/mediadex-cli/mediadex/version"
	"github.com/mediadex-cli/mediadex/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringSliceP("source", "S", []string{}, "Specify the default metadata sources to query")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("source", completionSourceNames))
	lo.Must0(viper.BindPFlag(key.SearchDefaultAPIs, rootCmd.PersistentFlags().Lookup("source")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// reg is the single registry instance every command queries. Building it once
// keeps supersession state shared across lookups within a run.
var reg = registry.Default()

func completionSourceNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return reg.Names(), cobra.ShellCompDirectiveDefault
}

// rootCmd defines the entry point for the mediadex application.
var rootCmd = &cobra.Command{
	Use:   constant.Mediadex,
	Short: "A command-line aggregator for media metadata across movies, games, books and more",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A command-line aggregator for media metadata across movies, games, books and more"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
