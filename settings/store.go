package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/archiver-cli/archiver/filesystem"
	"github.com/archiver-cli/archiver/log"
	"github.com/archiver-cli/archiver/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Store loads and saves settings.
type Store interface {
	Load() (Settings, error)
	Save(Settings) error
}

const (
	keyDownloadDirectory        = "download_directory"
	keyDownloadMode             = "download_mode"
	keyMaxConcurrentDownloads   = "max_concurrent_downloads"
	keyFavoriteCollections      = "favorite_collections"
	keyMaxConcurrentCollections = "max_concurrent_collections"
)

// FileStore keeps settings in a TOML file on the active filesystem backend.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Open returns the store at the default settings location.
func Open() *FileStore {
	return NewFileStore(where.Settings())
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) newViper() *viper.Viper {
	v := viper.New()
	v.SetFs(filesystem.API())
	v.SetConfigType("toml")
	v.SetConfigFile(f.path)

	defaults := Default()
	v.SetDefault(keyDownloadMode, defaults.DownloadMode.String())
	v.SetDefault(keyMaxConcurrentDownloads, defaults.MaxConcurrentDownloads)
	v.SetDefault(keyFavoriteCollections, defaults.FavoriteCollections)
	v.SetDefault(keyMaxConcurrentCollections, defaults.MaxConcurrentCollections)
	return v
}

// Load reads the settings file. A missing file yields the defaults.
func (f *FileStore) Load() (Settings, error) {
	exists, err := filesystem.API().Exists(f.path)
	if err != nil {
		return Settings{}, fmt.Errorf("stat settings: %w", err)
	}
	if !exists {
		return Default(), nil
	}

	v := f.newViper()
	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	s := Default()

	if dir := strings.TrimSpace(v.GetString(keyDownloadDirectory)); dir != "" {
		s.DownloadDirectory = mo.Some(dir)
	}

	if mode, err := ParseDownloadMode(v.GetString(keyDownloadMode)); err != nil {
		log.Warnf("settings: %v, using %s", err, s.DownloadMode)
	} else {
		s.DownloadMode = mode
	}

	if n := v.GetInt(keyMaxConcurrentDownloads); n > 0 {
		s.MaxConcurrentDownloads = n
	}
	if n := v.GetInt(keyMaxConcurrentCollections); n > 0 {
		s.MaxConcurrentCollections = n
	}

	s.FavoriteCollections = lo.Uniq(lo.Compact(v.GetStringSlice(keyFavoriteCollections)))
	return s, nil
}

// Save writes the settings file synchronously, creating its directory when needed.
func (f *FileStore) Save(s Settings) error {
	if err := filesystem.API().MkdirAll(filepath.Dir(f.path), os.ModePerm); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	v := f.newViper()
	if dir, ok := s.DownloadDirectory.Get(); ok {
		v.Set(keyDownloadDirectory, dir)
	}
	v.Set(keyDownloadMode, s.DownloadMode.String())
	v.Set(keyMaxConcurrentDownloads, s.MaxConcurrentDownloads)
	v.Set(keyFavoriteCollections, lo.Ternary(s.FavoriteCollections == nil, []string{}, s.FavoriteCollections))
	v.Set(keyMaxConcurrentCollections, s.MaxConcurrentCollections)

	if err := v.WriteConfigAs(f.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	log.Infof("settings saved to %s", f.path)
	return nil
}
