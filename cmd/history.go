// Package cmd implements the command-line interface for archiver.
package cmd

import (
	"encoding/json"
	"os"

	"github.com/archiver-cli/archiver/color"
	"github.com/archiver-cli/archiver/history"
	"github.com/archiver-cli/archiver/style"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Number of items to show, 0 shows all")
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	historyCmd.Flags().StringSliceP("remove", "r", []string{}, "Remove items from the history")
	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently viewed items",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, identifier := range lo.Must(cmd.Flags().GetStringSlice("remove")) {
			handleErr(history.Remove(identifier))
			success("removed %s from history", style.Fg(color.Purple)(identifier))
		}

		items, err := history.Recent(lo.Must(cmd.Flags().GetInt("limit")))
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(items))
			return
		}

		if len(items) == 0 {
			cmd.Println(style.Faint("No items viewed yet"))
			return
		}

		for _, item := range items {
			cmd.Printf("%s %s %s\n",
				style.Fg(color.Purple)(item.Identifier),
				item.Title,
				style.Faint(humanize.Time(item.ViewedAt)),
			)
		}
	},
}
