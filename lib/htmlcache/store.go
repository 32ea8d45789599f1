package htmlcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/afero"
)

var log = logger.GetGoI2PLogger()

// ErrInvalidKey is returned for keys whose parts would escape the cache directory.
var ErrInvalidKey = errors.New("invalid cache key")

// Store keeps formatter output as files below the html cache directory:
// <dir>/<formatter>/<lang>/<metadataId>.html.
type Store struct {
	fs     afero.Fs
	dir    string
	policy Policy
}

// NewStore returns a store rooted at dir.
func NewStore(fs afero.Fs, dir string, policy Policy) *Store {
	return &Store{fs: fs, dir: dir, policy: policy}
}

// Dir is the cache directory.
func (s *Store) Dir() string { return s.dir }

func segment(part string) bool {
	return part != "" && part != "." && part != ".." && !strings.ContainsAny(part, `/\`)
}

func (s *Store) path(key Key) (string, error) {
	if !segment(key.Formatter) || !segment(key.Lang) || key.MetadataID < 0 {
		return "", fmt.Errorf("%w: %s", ErrInvalidKey, key.String())
	}
	return filepath.Join(s.dir, key.Formatter, key.Lang, strconv.Itoa(key.MetadataID)+".html"), nil
}

// Get returns the cached output for key.
func (s *Store) Get(key Key) ([]byte, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, oops.Wrapf(err, "read cached %s", key.String())
	}
	return data, true, nil
}

// Put stores html for key when the policy allows it and reports whether it did.
func (s *Store) Put(key Key, html []byte) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}
	if !s.policy.AllowCaching(key) {
		log.WithField("key", key.String()).Debug("caching not allowed")
		return false, nil
	}
	if err := s.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return false, oops.Wrapf(err, "create cache directory for %s", key.String())
	}
	tmp := p + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, html, 0o644); err != nil {
		return false, oops.Wrapf(err, "write cached %s", key.String())
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		_ = s.fs.Remove(tmp)
		return false, oops.Wrapf(err, "publish cached %s", key.String())
	}
	return true, nil
}

// Remove drops the cached output for key.
func (s *Store) Remove(key Key) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !os.IsNotExist(err) {
		return oops.Wrapf(err, "remove cached %s", key.String())
	}
	return nil
}

// Purge empties the cache directory, keeping the directory itself, and
// returns the number of top level entries removed.
func (s *Store) Purge() (int, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, oops.Wrapf(err, "list cache directory %s", s.dir)
	}
	removed := 0
	for _, e := range entries {
		if err := s.fs.RemoveAll(filepath.Join(s.dir, e.Name())); err != nil {
			return removed, oops.Wrapf(err, "purge %s", e.Name())
		}
		removed++
	}
	log.WithFields(logger.Fields{
		"at":      "(Store) Purge",
		"dir":     s.dir,
		"removed": removed,
	}).Info("html cache purged")
	return removed, nil
}
