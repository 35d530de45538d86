package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get when no document exists under the given id.
var ErrNotFound = fmt.Errorf("store: not found")

// Collection names. Each maps to one table of (id, doc, indexed columns).
const (
	CollectionProjects          = "projects"
	CollectionScenes            = "scenes"
	CollectionSceneImages       = "scene_images"
	CollectionGenerationResults = "generation_results"
	CollectionMedia             = "media"
	CollectionSettings          = "settings"
)

// collections declares, per collection, the columns that mirror indexed
// document fields. Put requires a value for every declared column.
var collections = map[string][]string{
	CollectionProjects:          {"updated_at"},
	CollectionScenes:            {"project_id"},
	CollectionSceneImages:       {"scene_id"},
	CollectionGenerationResults: {"image_id"},
	CollectionMedia:             {"project_id", "created_at"},
	CollectionSettings:          nil,
}

// Store is the local document store backing every entity collection. Entities
// are persisted as JSON documents addressable by id, with declared index
// columns for secondary lookup.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path. Use ":memory:" for an
// ephemeral store. Pragmas follow local single-process usage: WAL for one
// writer plus readers, busy_timeout to ride out transient locks.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply pragma: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// DB exposes the underlying handle for the migrator.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

func indexColumns(collection string) ([]string, error) {
	cols, ok := collections[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
	return cols, nil
}

// Get loads the document with the given id into out. Returns ErrNotFound when
// the id is absent.
func (s *Store) Get(ctx context.Context, collection, id string, out any) error {
	if _, err := indexColumns(collection); err != nil {
		return err
	}

	var doc string
	err := s.db.QueryRowContext(ctx,
		"SELECT doc FROM "+collection+" WHERE id = ?", id,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}

	if err := json.Unmarshal([]byte(doc), out); err != nil {
		return fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	return nil
}

// Put upserts the document under id. index must supply a value for every
// index column the collection declares; an existing document with the same id
// is overwritten.
func (s *Store) Put(ctx context.Context, collection, id string, doc any, index map[string]any) error {
	cols, err := indexColumns(collection)
	if err != nil {
		return err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", collection, id, err)
	}

	insertCols := []string{"id", "doc"}
	args := []any{id, string(body)}
	updates := []string{"doc = excluded.doc"}
	for _, col := range cols {
		val, ok := index[col]
		if !ok {
			return fmt.Errorf("missing index value %q for collection %s", col, collection)
		}
		insertCols = append(insertCols, col)
		args = append(args, val)
		updates = append(updates, col+" = excluded."+col)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		collection,
		strings.Join(insertCols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(insertCols)), ", "),
		strings.Join(updates, ", "),
	)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete removes the document with the given id. Returns true if a document
// existed and was removed.
func (s *Store) Delete(ctx context.Context, collection, id string) (bool, error) {
	if _, err := indexColumns(collection); err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM "+collection+" WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return n > 0, nil
}

// ListByIndex loads every document whose index column equals value into out
// (a pointer to a slice), ordered ascending by the index column then by id.
// A nil value lists the whole collection in index order.
func (s *Store) ListByIndex(ctx context.Context, collection, index string, value any, out any) error {
	cols, err := indexColumns(collection)
	if err != nil {
		return err
	}
	valid := false
	for _, col := range cols {
		if col == index {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("collection %s has no index %q", collection, index)
	}

	query := "SELECT doc FROM " + collection
	var args []any
	if value != nil {
		query += " WHERE " + index + " = ?"
		args = append(args, value)
	}
	query += " ORDER BY " + index + " ASC, id ASC"

	return s.scanDocs(ctx, query, args, out)
}

// ListAll loads the whole collection into out in id order.
func (s *Store) ListAll(ctx context.Context, collection string, out any) error {
	if _, err := indexColumns(collection); err != nil {
		return err
	}
	return s.scanDocs(ctx, "SELECT doc FROM "+collection+" ORDER BY id ASC", nil, out)
}

func (s *Store) scanDocs(ctx context.Context, query string, args []any, out any) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]json.RawMessage, 0)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	// Decode through a JSON array so callers pass *[]T of their entity type.
	joined, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to decode documents: %w", err)
	}
	if err := json.Unmarshal(joined, out); err != nil {
		return fmt.Errorf("failed to decode documents: %w", err)
	}
	return nil
}
