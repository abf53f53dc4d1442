// Package cmd implements the command-line interface for archiver.
package cmd

import (
	"io"
	"os"

	"github.com/archiver-cli/archiver/archive"
	"github.com/archiver-cli/archiver/filesystem"
	"github.com/archiver-cli/archiver/inline"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("collection", "c", "", "List the items of a collection")
	inlineCmd.Flags().StringP("item", "i", "", "List the files of an item")
	inlineCmd.Flags().StringP("pick", "p", "", "Select items of the collection")
	inlineCmd.Flags().BoolP("details", "d", false, "Fetch the metadata of every selected item")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().StringP("output", "o", "", "Write the output to a file instead of stdout")

	inlineCmd.MarkFlagsMutuallyExclusive("collection", "item")
	inlineCmd.MarkFlagsOneRequired("collection", "item")

	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("collection", completionCollections))
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Query the archive without the interactive interface",
	Long: `Query the archive non-interactively, for scripts.

Item selectors:
  first - first item of the collection
  last - last item of the collection
  all - every item of the collection
  [number] - select an item by index (starting from 0)
  [from]-[to] - select items by range
  @[substring]@ - select items whose identifier contains the substring`,
	Example: `  archiver inline --collection nasa --pick 0-9
  archiver inline --item gd1977-05-08 --json`,
	Run: func(cmd *cobra.Command, args []string) {
		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		picker := mo.None[inline.Picker]()
		if pick := lo.Must(cmd.Flags().GetString("pick")); pick != "" {
			fn, err := inline.ParsePicker(pick)
			handleErr(err)
			picker = mo.Some(fn)
		}

		options := &inline.Options{
			Out:        writer,
			Fetcher:    archive.NewFromConfig(),
			Collection: lo.Must(cmd.Flags().GetString("collection")),
			Item:       lo.Must(cmd.Flags().GetString("item")),
			Json:       lo.Must(cmd.Flags().GetBool("json")),
			Details:    lo.Must(cmd.Flags().GetBool("details")),
			Picker:     picker,
		}

		handleErr(inline.Run(cmd.Context(), options))
	},
}
