package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/jackc/pgx/v5/stdlib"

	"khata/internal/config"
)

// NewDB opens the pgx-backed pool used by every repository and verifies the
// connection. Pool limits come from cfg; a zero MaxLifetime keeps connections
// open indefinitely.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(cfg.MaxLifetime)
	return db, nil
}
