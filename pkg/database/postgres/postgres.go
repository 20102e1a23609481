package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type ConnectionInfo struct {
	Host     string
	Port     int
	Username string
	DBName   string
	SSLMode  string
	Password string

	MaxOpenConns int
	PingTimeout  time.Duration
}

func (i ConnectionInfo) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s sslmode=%s password=%s",
		i.Host,
		i.Port,
		i.Username,
		i.DBName,
		i.SSLMode,
		i.Password,
	)
}

func NewPostgresConnection(ctx context.Context, info ConnectionInfo) (*sql.DB, error) {
	db, err := sql.Open("pgx", info.DSN())
	if err != nil {
		return nil, err
	}

	if info.MaxOpenConns > 0 {
		db.SetMaxOpenConns(info.MaxOpenConns)
	}

	timeout := info.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("close postgres connection: %w", err)
	}
	return nil
}
