// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collection keeps named, ordered lists of curated artworks and
// tracks which list is active. Lists live in an in-memory SQLite database
// and disappear when the process exits.
package collection

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/exhibition-curator/pkg/types"
)

// ErrInvalidName is returned for a blank collection name.
var ErrInvalidName = errors.New("collection name must not be blank")

// NotFoundError reports a collection name that does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("collection not found: %q", e.Name)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Store manages the collections. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	active string
	log    logrus.FieldLogger
}

// NewStore opens a private in-memory database, creates the schema, and
// creates the default collection named in cfg (or "default"), which
// starts out active.
func NewStore(cfg types.CollectionConfig, logger logrus.FieldLogger) (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every connection to ":memory:" is a separate database, so pin one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	s := &Store{db: db, log: logger}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	name := strings.TrimSpace(cfg.DefaultName)
	if name == "" {
		name = types.DefaultCollection
	}
	if err := s.insertCollection(name); err != nil {
		db.Close()
		return nil, err
	}
	s.active = name
	return s, nil
}

// Close releases the database; every collection is lost.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE collections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE items (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			collection_id INTEGER NOT NULL REFERENCES collections(id),
			item_id TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT,
			image TEXT,
			source TEXT,
			year INTEGER,
			raw_date TEXT
		)`,
		`CREATE INDEX idx_items_collection ON items(collection_id, item_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func (s *Store) insertCollection(name string) error {
	if _, err := s.db.Exec(`INSERT INTO collections(name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("creating collection %q: %w", name, err)
	}
	return nil
}

// collectionID returns the row id for name, or a *NotFoundError.
func (s *Store) collectionID(name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM collections WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &NotFoundError{Name: name}
	}
	if err != nil {
		return 0, fmt.Errorf("looking up collection %q: %w", name, err)
	}
	return id, nil
}

// Create adds an empty collection and makes it active. If name already
// exists nothing changes and created is false. Surrounding whitespace is
// trimmed; a blank name returns ErrInvalidName.
func (s *Store) Create(name string) (created bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.collectionID(name); err == nil {
		return false, nil
	} else if !IsNotFound(err) {
		return false, err
	}

	if err := s.insertCollection(name); err != nil {
		return false, err
	}
	s.active = name
	s.log.WithField("collection", name).Debug("collection created")
	return true, nil
}

// SetActive switches the active collection. The name is trimmed as in
// Create. A missing name returns a *NotFoundError and leaves the active
// collection unchanged.
func (s *Store) SetActive(name string) error {
	name = strings.TrimSpace(name)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.collectionID(name); err != nil {
		return err
	}
	s.active = name
	return nil
}

// Active returns the name of the active collection.
func (s *Store) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Names returns every collection name in creation order.
func (s *Store) Names() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT name FROM collections ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Add appends item to the active collection. Duplicates are kept.
func (s *Store) Add(item types.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cid, err := s.collectionID(s.active)
	if err != nil {
		return err
	}

	var year sql.NullInt64
	if y, ok := item.Year(); ok {
		year = sql.NullInt64{Int64: int64(y), Valid: true}
	}
	_, err = s.db.Exec(
		`INSERT INTO items(collection_id, item_id, title, artist, image, source, year, raw_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cid, item.ID, item.Title, item.Artist, item.Image, item.Source, year, item.RawDate,
	)
	if err != nil {
		return fmt.Errorf("adding %s to %q: %w", item.ID, s.active, err)
	}
	s.log.WithFields(logrus.Fields{"collection": s.active, "item": item.ID}).Debug("item added")
	return nil
}

// Remove deletes every item with the given id from the active collection
// and returns how many were removed. An unknown id removes nothing.
func (s *Store) Remove(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cid, err := s.collectionID(s.active)
	if err != nil {
		return 0, err
	}

	res, err := s.db.Exec(`DELETE FROM items WHERE collection_id = ? AND item_id = ?`, cid, id)
	if err != nil {
		return 0, fmt.Errorf("removing %s from %q: %w", id, s.active, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting removed items: %w", err)
	}
	return int(n), nil
}

// Items returns the items of the named collection in insertion order.
func (s *Store) Items(name string) ([]types.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items(name)
}

// ActiveItems returns the items of the active collection.
func (s *Store) ActiveItems() ([]types.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items(s.active)
}

func (s *Store) items(name string) ([]types.Item, error) {
	cid, err := s.collectionID(name)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT item_id, title, artist, image, source, year, raw_date
		 FROM items WHERE collection_id = ? ORDER BY seq`, cid)
	if err != nil {
		return nil, fmt.Errorf("querying items of %q: %w", name, err)
	}
	defer rows.Close()

	items := []types.Item{}
	for rows.Next() {
		var (
			it                             types.Item
			artist, image, source, rawDate sql.NullString
			year                           sql.NullInt64
		)
		if err := rows.Scan(&it.ID, &it.Title, &artist, &image, &source, &year, &rawDate); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		it.Artist = artist.String
		it.Image = image.String
		it.Source = source.String
		it.RawDate = rawDate.String
		if year.Valid {
			y := int(year.Int64)
			it.Date = &y
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Export writes the named collection to w as YAML.
func (s *Store) Export(name string, w io.Writer) error {
	items, err := s.Items(name)
	if err != nil {
		return err
	}
	doc := struct {
		Name  string       `yaml:"name"`
		Items []types.Item `yaml:"items"`
	}{Name: name, Items: items}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding collection %q: %w", name, err)
	}
	return enc.Close()
}
