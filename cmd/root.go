// Package cmd implements the command-line interface for archiver.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/archiver-cli/archiver/archive"
	"github.com/archiver-cli/archiver/color"
	"github.com/archiver-cli/archiver/constant"
	"github.com/archiver-cli/archiver/download"
	"github.com/archiver-cli/archiver/icon"
	"github.com/archiver-cli/archiver/key"
	"github.com/archiver-cli/archiver/log"
	"github.com/archiver-cli/archiver/query"
	"github.com/archiver-cli/archiver/settings"
	"github.com/archiver-cli/archiver/style"
	"github.com/archiver-cli/archiver/tui"
	"github.com/archiver-cli/archiver/util"
	"github.com/archiver-cli/archiver/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func completionCollections(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().StringP("collection", "c", "", "Search this collection right away")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("collection", completionCollections))

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the archiver application.
var rootCmd = &cobra.Command{
	Use:   constant.Archiver,
	Short: "A terminal browser for the collections of a media archive",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal browser for the collections of a media archive"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		client := archive.NewFromConfig()
		options := tui.Options{
			Fetcher:    client,
			Store:      settings.Open(),
			Starter:    download.NewQueue(client),
			Collection: lo.Must(cmd.Flags().GetString("collection")),
		}
		handleErr(tui.Run(cmd.Context(), &options))
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
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
