package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campusEvents/internal/models"
	"campusEvents/internal/session"

	_ "modernc.org/sqlite"
)

type Storage struct {
	db *sql.DB
}

func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time keeps SQLite from answering "database is locked".
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}

	if err = s.initSchema(context.Background()); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		token      TEXT NOT NULL DEFAULT '',
		user_data  TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_updated_at_idx ON sessions (updated_at);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Get(ctx context.Context, id string) (*session.Session, error) {
	query := `SELECT id, token, user_data, created_at, updated_at FROM sessions WHERE id = ?`

	var (
		sess                 session.Session
		userData             sql.NullString
		createdAt, updatedAt int64
	)

	err := s.db.QueryRowContext(ctx, query, id).Scan(&sess.ID, &sess.AccessToken, &userData, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	sess.CreatedAt = time.UnixMilli(createdAt).UTC()
	sess.UpdatedAt = time.UnixMilli(updatedAt).UTC()

	if userData.Valid && userData.String != "" {
		var user models.User
		if err = json.Unmarshal([]byte(userData.String), &user); err != nil {
			return nil, fmt.Errorf("failed to decode session user: %w", err)
		}
		sess.User = &user
	}

	return &sess, nil
}

func (s *Storage) Save(ctx context.Context, sess *session.Session) error {
	var userData sql.NullString

	if sess.User != nil {
		b, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("failed to encode session user: %w", err)
		}
		userData = sql.NullString{String: string(b), Valid: true}
	}

	query := `
	INSERT INTO sessions (id, token, user_data, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET token = excluded.token, user_data = excluded.user_data, updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		sess.ID, sess.AccessToken, userData, sess.CreatedAt.UnixMilli(), sess.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *Storage) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (s *Storage) DeleteIdle(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to delete idle sessions: %w", err)
	}

	return res.RowsAffected()
}
