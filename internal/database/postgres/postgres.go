package postgres

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"invoicing-service/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// ConnectAndCreateDB connects to PostgreSQL, creating the service database
// and bootstrapping schema.sql on first run.
func ConnectAndCreateDB(cfg config.PostgresConfig) (*sqlx.DB, error) {
	defaultConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	defaultDB, err := sql.Open("postgres", defaultConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to default postgres db: %w", err)
	}
	defer defaultDB.Close()

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	if err := defaultDB.QueryRow(checkQuery, cfg.DBname).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check if database exists: %w", err)
	}

	if !exists {
		if _, err := defaultDB.Exec(fmt.Sprintf(`CREATE DATABASE "%s"`, cfg.DBname)); err != nil {
			return nil, fmt.Errorf("failed to create database %s: %w", cfg.DBname, err)
		}
		slog.Info("database created", "dbname", cfg.DBname)
	}

	targetConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBname)

	db, err := sqlx.Connect("postgres", targetConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to target database: %w", err)
	}

	if !exists {
		if err := executeSchema(db); err != nil {
			slog.Warn("failed to execute schema.sql, apply it manually", "error", err)
		}
	}

	return db, nil
}

// RetryConnectOnFailed keeps retrying the connection in the background until
// it succeeds, replacing *db on success.
func RetryConnectOnFailed(interval time.Duration, db **sqlx.DB, cfg config.PostgresConfig) {
	for {
		time.Sleep(interval)
		conn, err := ConnectAndCreateDB(cfg)
		if err != nil {
			slog.Error("postgres reconnect failed", "error", err)
			continue
		}
		*db = conn
		slog.Info("postgres reconnected")
		return
	}
}

func executeSchema(db *sqlx.DB) error {
	locations := []string{"schema.sql", "./schema.sql", "/app/schema.sql"}

	var schemaPath string
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			schemaPath = location
			break
		}
	}
	if schemaPath == "" {
		return fmt.Errorf("schema.sql not found in any expected location: %v", locations)
	}

	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", schemaPath, err)
	}

	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	slog.Info("schema bootstrapped", "path", schemaPath)
	return nil
}
