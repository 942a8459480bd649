package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jwebster45206/tribe-engine/pkg/state"
	"github.com/jwebster45206/tribe-engine/pkg/storage"
	_ "modernc.org/sqlite"
)

// SQLiteStorage keeps saves in a single table, one row per session.
type SQLiteStorage struct {
	conn   *sqlx.DB
	logger *slog.Logger
}

var (
	_ storage.Storage = (*SQLiteStorage)(nil)
	_ storage.Lister  = (*SQLiteStorage)(nil)
)

type saveRow struct {
	ID        string `db:"id"`
	Player    string `db:"player"`
	Day       int    `db:"day"`
	Payload   []byte `db:"payload"`
	UpdatedAt int64  `db:"updated_at"`
}

// OpenSQLite opens or creates the database at path and migrates it.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStorage, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if logger == nil {
		logger = slog.Default()
	}

	db := &SQLiteStorage{conn: conn, logger: logger}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (db *SQLiteStorage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		id TEXT PRIMARY KEY,
		player TEXT NOT NULL,
		day INTEGER NOT NULL,
		payload BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_saves_updated ON saves(updated_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

func (db *SQLiteStorage) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

func (db *SQLiteStorage) Close() error {
	return db.conn.Close()
}

func (db *SQLiteStorage) Save(ctx context.Context, s *state.Session) (uuid.UUID, error) {
	if s == nil {
		return uuid.Nil, storage.Wrap("save", uuid.Nil, errors.New("session cannot be nil"))
	}
	id := storage.Handle(s)
	data, err := state.Encode(s)
	if err != nil {
		return uuid.Nil, storage.Wrap("save", id, err)
	}
	info := storage.Info(s, time.Now())
	row := saveRow{
		ID:        id.String(),
		Player:    info.Player,
		Day:       info.Day,
		Payload:   data,
		UpdatedAt: info.SavedAt.UnixMilli(),
	}
	_, err = db.conn.NamedExecContext(ctx, `
		INSERT INTO saves (id, player, day, payload, updated_at)
		VALUES (:id, :player, :day, :payload, :updated_at)
		ON CONFLICT(id) DO UPDATE SET
			player = excluded.player,
			day = excluded.day,
			payload = excluded.payload,
			updated_at = excluded.updated_at`, row)
	if err != nil {
		db.logger.Error("Failed to save session", "session_id", id, "error", err)
		return uuid.Nil, storage.Wrap("save", id, err)
	}
	return id, nil
}

func (db *SQLiteStorage) Load(ctx context.Context, handle uuid.UUID) (*state.Session, error) {
	var row saveRow
	err := db.conn.GetContext(ctx, &row, "SELECT id, player, day, payload, updated_at FROM saves WHERE id = ?", handle.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.Wrap("load", handle, storage.ErrNotFound)
	}
	if err != nil {
		db.logger.Error("Failed to load session", "session_id", handle, "error", err)
		return nil, storage.Wrap("load", handle, err)
	}
	s, err := state.Decode(row.Payload)
	if err != nil {
		return nil, storage.Wrap("load", handle, err)
	}
	return s, nil
}

func (db *SQLiteStorage) Delete(ctx context.Context, handle uuid.UUID) error {
	if _, err := db.conn.ExecContext(ctx, "DELETE FROM saves WHERE id = ?", handle.String()); err != nil {
		return storage.Wrap("delete", handle, err)
	}
	return nil
}

// List returns every save, most recent first.
func (db *SQLiteStorage) List(ctx context.Context) ([]storage.SaveInfo, error) {
	var rows []saveRow
	if err := db.conn.SelectContext(ctx, &rows, "SELECT id, player, day, updated_at FROM saves ORDER BY updated_at DESC"); err != nil {
		return nil, storage.Wrap("list", uuid.Nil, err)
	}
	out := make([]storage.SaveInfo, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			db.logger.Warn("Skipping save with bad id", "id", r.ID, "error", err)
			continue
		}
		out = append(out, storage.SaveInfo{
			Handle:  id,
			Player:  r.Player,
			Day:     r.Day,
			SavedAt: time.UnixMilli(r.UpdatedAt),
		})
	}
	return out, nil
}

// Put writes a raw payload under handle. It is used to import saves made
// elsewhere and by tests.
func (db *SQLiteStorage) Put(ctx context.Context, handle uuid.UUID, payload []byte) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT OR REPLACE INTO saves (id, player, day, payload, updated_at) VALUES (?, '', 0, ?, ?)",
		handle.String(), payload, time.Now().UnixMilli())
	return storage.Wrap("put", handle, err)
}
