package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	name     TEXT PRIMARY KEY,
	value    TEXT,
	datatype TEXT NOT NULL DEFAULT 'STRING',
	position INTEGER NOT NULL DEFAULT 0,
	internal INTEGER NOT NULL DEFAULT 1
);
`

// Store is the persistent settings repository. It is safe for concurrent use.
type Store struct {
	db *sql.DB
	// mu serializes writers; SQLite allows a single writer anyway.
	mu sync.Mutex
}

// Open opens or creates the settings database at path. ":memory:" gives a
// private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, oops.Wrapf(err, "open settings database %s", path)
	}
	// One connection keeps ":memory:" databases alive and shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, oops.Wrapf(err, "configure settings database %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, oops.Wrapf(err, "create settings schema")
	}
	log.WithField("path", path).Debug("settings database opened")
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Conn reserves a connection for exclusive use, e.g. by a migration step.
// It must be closed before the store is used again.
func (s *Store) Conn(ctx context.Context) (*sql.Conn, error) {
	return s.db.Conn(ctx)
}

// Define inserts def unless a setting with the same name exists.
func (s *Store) Define(def Definition) error {
	if def.DataType == "" {
		def.DataType = TypeString
	}
	if err := def.DataType.Validate(def.Value); err != nil {
		return fmt.Errorf("setting %s: %w", def.Name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO settings (name, value, datatype, position, internal) VALUES (?, ?, ?, ?, ?)`,
		def.Name, def.Value, string(def.DataType), def.Position, def.Internal,
	)
	if err != nil {
		return oops.Wrapf(err, "define setting %s", def.Name)
	}
	return nil
}

// DefineAll defines every definition in order.
func (s *Store) DefineAll(defs []Definition) error {
	for _, def := range defs {
		if err := s.Define(def); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) lookup(key string) (Setting, error) {
	var (
		value    sql.NullString
		datatype string
		setting  = Setting{Name: key}
	)
	err := s.db.QueryRow(
		`SELECT value, datatype, position, internal FROM settings WHERE name = ?`, key,
	).Scan(&value, &datatype, &setting.Position, &setting.Internal)
	if errors.Is(err, sql.ErrNoRows) {
		return Setting{}, fmt.Errorf("%w: %s", ErrUnknownSettingKey, key)
	}
	if err != nil {
		return Setting{}, oops.Wrapf(err, "read setting %s", key)
	}
	setting.Value = value.String
	setting.Null = !value.Valid
	setting.DataType = DataType(datatype)
	return setting, nil
}

// Get returns the value stored under key. A missing key is logged as an
// error and a null value as a warning; both report absent.
func (s *Store) Get(key string) (string, bool) {
	setting, err := s.lookup(key)
	if err != nil {
		log.WithError(err).WithFields(logger.Fields{
			"at":  "(Store) Get",
			"key": key,
		}).Error("requested setting not found")
		return "", false
	}
	if setting.Null {
		log.WithFields(logger.Fields{
			"at":  "(Store) Get",
			"key": key,
		}).Warn("setting has a null value")
		return "", false
	}
	return setting.Value, true
}

// GetBool returns the boolean value of key, or def when it is absent or not a boolean.
func (s *Store) GetBool(key string, def bool) bool {
	v, ok := s.Get(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("setting is not a boolean")
		return def
	}
	return b
}

// GetInt returns the integer value of key. ok is false when the key is
// absent or empty; err is set when the stored value is not an integer.
func (s *Store) GetInt(key string) (int, bool, error) {
	v, ok := s.Get(key)
	if !ok || v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s=%q", ErrInvalidSettingValue, key, v)
	}
	return n, true, nil
}

// Set stores value under an existing key after checking it against the
// declared data type.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(s.db, key, value)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

func (s *Store) set(ex execer, key, value string) error {
	var datatype string
	err := ex.QueryRow(`SELECT datatype FROM settings WHERE name = ?`, key).Scan(&datatype)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrUnknownSettingKey, key)
	}
	if err != nil {
		return oops.Wrapf(err, "read setting %s", key)
	}
	if err := DataType(datatype).Validate(value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	if _, err := ex.Exec(`UPDATE settings SET value = ? WHERE name = ?`, value, key); err != nil {
		return oops.Wrapf(err, "update setting %s", key)
	}
	log.WithField("key", key).Debug("setting updated")
	return nil
}

// SetValues sets every entry in key order inside one transaction. The first
// failure is returned and nothing is stored.
func (s *Store) SetValues(values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return oops.Wrapf(err, "begin settings transaction")
	}
	for _, k := range keys {
		if err := s.set(tx, k, values[k]); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return oops.Wrapf(err, "commit settings")
	}
	return nil
}

// All returns every setting ordered by name.
func (s *Store) All() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT name, value, datatype, position, internal FROM settings ORDER BY name`)
	if err != nil {
		return nil, oops.Wrapf(err, "list settings")
	}
	defer rows.Close()

	var out []Setting
	for rows.Next() {
		var (
			st       Setting
			value    sql.NullString
			datatype string
		)
		if err := rows.Scan(&st.Name, &value, &datatype, &st.Position, &st.Internal); err != nil {
			return nil, oops.Wrapf(err, "scan setting")
		}
		st.Value = value.String
		st.Null = !value.Valid
		st.DataType = DataType(datatype)
		out = append(out, st)
	}
	return out, rows.Err()
}

// GetAllAsTree returns every setting arranged by its "/" separated path.
func (s *Store) GetAllAsTree() (*Node, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	return BuildTree(all), nil
}

// SiteID returns the catalogue identifier.
func (s *Store) SiteID() string {
	v, _ := s.Get(KeySiteID)
	return v
}

// SiteName returns the catalogue name.
func (s *Store) SiteName() string {
	v, _ := s.Get(KeySiteName)
	return v
}
