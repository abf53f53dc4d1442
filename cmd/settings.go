// Package cmd implements the command-line interface for archiver.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/archiver-cli/archiver/color"
	"github.com/archiver-cli/archiver/icon"
	"github.com/archiver-cli/archiver/settings"
	"github.com/archiver-cli/archiver/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetDirCmd, settingsUnsetDirCmd, settingsModeCmd, settingsFavoritesCmd)

	settingsFavoritesCmd.Flags().StringSliceP("add", "a", []string{}, "Add collections to the favorites")
	settingsFavoritesCmd.Flags().StringSliceP("remove", "r", []string{}, "Remove collections from the favorites")
	lo.Must0(settingsFavoritesCmd.RegisterFlagCompletionFunc("add", completionCollections))

	settingsShowCmd.SetOut(os.Stdout)
	settingsFavoritesCmd.SetOut(os.Stdout)
}

// updateSettings loads the settings file, applies change and saves the result.
func updateSettings(change func(settings.Settings) (settings.Settings, error)) settings.Settings {
	store := settings.Open()
	current, err := store.Load()
	handleErr(err)

	next, err := change(current)
	handleErr(err)
	handleErr(store.Save(next))
	return next
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the download directory, download mode and favorites",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Run: func(cmd *cobra.Command, args []string) {
		store := settings.Open()
		s, err := store.Load()
		handleErr(err)

		field := func(name string, value any) {
			cmd.Printf("%s %v\n", style.Fg(color.Blue)(name+":"), value)
		}

		cmd.Println(style.Faint(store.Path()))
		field("Download directory", s.DownloadDirectory.OrElse(style.Fg(color.Red)("unset")))
		field("Download mode", style.Fg(color.Yellow)(s.DownloadMode.String()))
		field("Max concurrent downloads", s.MaxConcurrentDownloads)
		field("Max concurrent collections", s.MaxConcurrentCollections)
		field("Favorite collections", len(s.FavoriteCollections))
	},
}

var settingsSetDirCmd = &cobra.Command{
	Use:   "set-dir <directory>",
	Short: "Set the directory downloads are saved to",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := filepath.Abs(args[0])
		handleErr(err)

		updateSettings(func(s settings.Settings) (settings.Settings, error) {
			return s.WithDownloadDirectory(dir), nil
		})
		success("downloads go to %s", style.Fg(color.Purple)(dir))
	},
}

var settingsUnsetDirCmd = &cobra.Command{
	Use:   "unset-dir",
	Short: "Forget the download directory, it will be asked for on the next download",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		updateSettings(func(s settings.Settings) (settings.Settings, error) {
			return s.WithDownloadDirectory(""), nil
		})
		success("download directory unset")
	},
}

var settingsModeCmd = &cobra.Command{
	Use:       "mode <direct|torrent>",
	Short:     "Choose between downloading files directly or only their torrent",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{settings.Direct.String(), settings.TorrentOnly.String()},
	Run: func(cmd *cobra.Command, args []string) {
		s := updateSettings(func(s settings.Settings) (settings.Settings, error) {
			mode, err := settings.ParseDownloadMode(args[0])
			if err != nil {
				return s, err
			}
			s.DownloadMode = mode
			return s, nil
		})
		success("download mode set to %s", style.Fg(color.Yellow)(s.DownloadMode.String()))
	},
}

var settingsFavoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List, add or remove favorite collections",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		add := lo.Must(cmd.Flags().GetStringSlice("add"))
		remove := lo.Must(cmd.Flags().GetStringSlice("remove"))

		var s settings.Settings
		if len(add) == 0 && len(remove) == 0 {
			var err error
			s, err = settings.Open().Load()
			handleErr(err)
		} else {
			s = updateSettings(func(s settings.Settings) (settings.Settings, error) {
				return withFavorites(s, add, remove), nil
			})
		}

		if len(s.FavoriteCollections) == 0 {
			cmd.Println(style.Faint("No favorite collections"))
			return
		}

		for _, name := range s.FavoriteCollections {
			cmd.Printf("%s %s\n", icon.Get(icon.Favorite), name)
		}
	},
}

// withFavorites adds and removes collections without toggling ones already in the wanted state.
func withFavorites(s settings.Settings, add, remove []string) settings.Settings {
	for _, name := range add {
		if !s.IsFavorite(name) {
			s, _ = s.ToggleFavorite(name)
		}
	}
	for _, name := range remove {
		if s.IsFavorite(name) {
			s, _ = s.ToggleFavorite(name)
		}
	}
	return s
}
