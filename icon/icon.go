// Package icon renders the symbols used in status lines and lists.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII or Unicode squares depending on user preference.
package icon

import (
	"github.com/archiver-cli/archiver/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, squares}
}

type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Search
	Favorite
	Download
	Folder
	File
	Link
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	squares string
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "+", squares: "🟩"},
	Fail:     {emoji: "❌", nerd: "", plain: "x", squares: "🟥"},
	Progress: {emoji: "⏳", nerd: "", plain: "~", squares: "🟨"},
	Search:   {emoji: "🔍", nerd: "", plain: "?", squares: "🟦"},
	Favorite: {emoji: "⭐", nerd: "", plain: "*", squares: "🟪"},
	Download: {emoji: "📥", nerd: "", plain: "v", squares: "🟫"},
	Folder:   {emoji: "📁", nerd: "", plain: "/", squares: "⬛"},
	File:     {emoji: "📄", nerd: "", plain: "-", squares: "⬜"},
	Link:     {emoji: "🔗", nerd: "", plain: "@", squares: "🔳"},
}

// Get returns the representation for the configured variant, or "" for an unknown variant.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a registered icon.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.Get()
}
