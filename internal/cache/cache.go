// Package cache keeps JSON documents on the active filesystem backend for a limited time.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/archiver-cli/archiver/filesystem"
	"github.com/archiver-cli/archiver/log"
)

// Store is a directory of cached documents that expire ttl after they were written.
type Store struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

func New(dir string, ttl time.Duration) *Store {
	return &Store{dir: dir, ttl: ttl, now: time.Now}
}

// Key derives a file name from an identifier. Case and surrounding space are ignored.
func Key(identifier string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(identifier))))
	return hex.EncodeToString(hash[:])
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Read decodes a fresh cached document into target and reports whether it did.
func (s *Store) Read(key string, target any) bool {
	path := s.path(key)

	info, err := filesystem.API().Stat(path)
	if err != nil || s.now().Sub(info.ModTime()) > s.ttl {
		return false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, target); err != nil {
		log.Warnf("cache: corrupt entry %s: %v", path, err)
		return false
	}
	return true
}

// Write stores a document, replacing the previous one.
func (s *Store) Write(key string, data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return filesystem.WriteAtomic(s.path(key), encoded, 0o644)
}

// CollectGarbage removes expired documents and returns how many were removed.
func (s *Store) CollectGarbage() int {
	api := filesystem.API()
	removed := 0

	_ = api.Walk(s.dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if s.now().Sub(info.ModTime()) > s.ttl && api.Remove(path) == nil {
			removed++
		}
		return nil
	})

	if removed > 0 {
		log.Infof("cache: removed %d expired entries from %s", removed, s.dir)
	}
	return removed
}
