package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campusEvents/internal/config"
	"campusEvents/internal/models"
	"campusEvents/internal/session"

	_ "github.com/lib/pq"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	s := &Storage{DB: db}

	if err = s.migrate(context.Background()); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			token      TEXT NOT NULL DEFAULT '',
			user_data  JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS sessions_updated_at_idx ON sessions (updated_at);`

	if _, err := s.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) Get(ctx context.Context, id string) (*session.Session, error) {
	query := `
		SELECT id, token, user_data, created_at, updated_at
		FROM sessions
		WHERE id = $1`

	var (
		sess     session.Session
		userData []byte
	)

	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&sess.ID,
		&sess.AccessToken,
		&userData,
		&sess.CreatedAt,
		&sess.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if len(userData) > 0 {
		var user models.User
		if err = json.Unmarshal(userData, &user); err != nil {
			return nil, fmt.Errorf("failed to decode session user: %w", err)
		}
		sess.User = &user
	}

	return &sess, nil
}

func (s *Storage) Save(ctx context.Context, sess *session.Session) error {
	var userData []byte

	if sess.User != nil {
		b, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("failed to encode session user: %w", err)
		}
		userData = b
	}

	query := `
		INSERT INTO sessions (id, token, user_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET token = EXCLUDED.token,
		    user_data = EXCLUDED.user_data,
		    updated_at = EXCLUDED.updated_at`

	_, err := s.DB.ExecContext(ctx, query, sess.ID, sess.AccessToken, userData, sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *Storage) Delete(ctx context.Context, id string) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (s *Storage) DeleteIdle(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete idle sessions: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()

	return rowsAffected, nil
}
