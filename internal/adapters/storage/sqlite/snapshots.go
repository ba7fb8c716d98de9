package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"puericultura/internal/domain/backup"
)

const defaultKeep = 50

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	saved_at INTEGER NOT NULL,
	document BLOB NOT NULL
);`

// SnapshotStore guarda el documento completo en un archivo sqlite local.
// Conserva solo los últimos keep snapshots.
type SnapshotStore struct {
	db   *sql.DB
	keep int
}

func Open(path string) (*SnapshotStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// un solo writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SnapshotStore{db: db, keep: defaultKeep}, nil
}

func (s *SnapshotStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SnapshotStore) Save(ctx context.Context, doc backup.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	savedAt := time.Now().UTC()
	if doc.LastUpdated != nil {
		savedAt = doc.LastUpdated.UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (saved_at, document) VALUES (?, ?)`,
		savedAt.UnixMilli(), raw,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`,
		s.keep,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SnapshotStore) Latest(ctx context.Context) (backup.Document, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return backup.Document{}, backup.ErrNoSnapshot
	}
	if err != nil {
		return backup.Document{}, err
	}

	var doc backup.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return backup.Document{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return doc, nil
}

// Count sirve para inspección y tests.
func (s *SnapshotStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&n)
	return n, err
}
