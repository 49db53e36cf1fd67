package database

import (
	"database/sql"
	"fmt"
	stdlog "log"

	"github.com/username/salesfolio/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

const schema = `
	CREATE TABLE IF NOT EXISTS sales_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hash_id TEXT NOT NULL,
		platform TEXT NOT NULL,
		external_id TEXT NOT NULL,
		product_code TEXT NOT NULL,
		disposition TEXT NOT NULL,
		order_id TEXT,
		product_name TEXT,
		quantity INTEGER NOT NULL DEFAULT 0,
		quantity_returned INTEGER NOT NULL DEFAULT 0,
		revenue TEXT NOT NULL DEFAULT '0',
		fees TEXT NOT NULL DEFAULT '0',
		adjustments TEXT NOT NULL DEFAULT '0',
		province TEXT,
		order_date TEXT,
		payment_date TEXT,
		components TEXT,
		upload_id TEXT,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(platform, external_id, product_code, disposition)
	);

	CREATE INDEX IF NOT EXISTS idx_sales_records_platform_date ON sales_records(platform, order_date);

	CREATE TABLE IF NOT EXISTS platform_metrics (
		platform TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		upload_id TEXT,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS code_mappings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		platform TEXT NOT NULL,
		external_code TEXT NOT NULL,
		canonical_name TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(platform, external_code)
	);

	CREATE TABLE IF NOT EXISTS province_aliases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		canonical TEXT NOT NULL,
		alias TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(canonical, alias)
	);
	`

// InitDB opens the database at databasePath, applies migrations and stores
// the handle in DB. It exits the process when the database is unusable.
func InitDB(databasePath string) {
	db, err := Open(databasePath)
	if err != nil {
		logger.L.Error("failed to initialise database", "databasePath", databasePath, "error", err)
		stdlog.Fatalf("failed to initialise database at %s: %v", databasePath, err)
	}
	DB = db
}

// Open opens a sqlite database and ensures every table exists.
func Open(databasePath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer; an in-memory database also lives on a
	// single connection.
	db.SetMaxOpenConns(1)

	logger.L.Info("Checking database migrations", "databasePath", databasePath)
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate upgrades tables created by earlier releases and creates missing ones.
func Migrate(db *sql.DB) error {
	if err := migrateSalesTable(db); err != nil {
		return err
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	logger.L.Info("Database tables ensured/created.")
	return nil
}

// migrateSalesTable adds columns introduced after the first release of
// sales_records.
func migrateSalesTable(db *sql.DB) error {
	var tableName string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='sales_records'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.L.Info("sales_records table does not exist, no migration needed as table will be created.")
			return nil
		}
		return fmt.Errorf("error checking for sales_records table: %w", err)
	}

	rows, err := db.Query("PRAGMA table_info(sales_records)")
	if err != nil {
		return fmt.Errorf("error querying table schema for sales_records: %w", err)
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			return fmt.Errorf("error scanning column info for sales_records: %w", err)
		}
		columnExists[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating over column info for sales_records: %w", err)
	}
	rows.Close()

	added := []struct{ name, ddl string }{
		{"payment_date", "ALTER TABLE sales_records ADD COLUMN payment_date TEXT"},
		{"components", "ALTER TABLE sales_records ADD COLUMN components TEXT"},
	}
	for _, col := range added {
		if columnExists[col.name] {
			continue
		}
		if _, err := db.Exec(col.ddl); err != nil {
			return fmt.Errorf("error adding %s column to sales_records: %w", col.name, err)
		}
		logger.L.Info("Added column to sales_records table", "column", col.name)
	}
	return nil
}
