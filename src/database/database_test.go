package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesTables(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"sales_records", "platform_metrics", "code_mappings", "province_aliases"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_AddsMissingColumns(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("DROP TABLE sales_records")
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE sales_records (
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
		upload_id TEXT,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(platform, external_id, product_code, disposition)
	)`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "migrations are repeatable")

	rows, err := db.Query("PRAGMA table_info(sales_records)")
	require.NoError(t, err)
	defer rows.Close()
	columns := map[string]bool{}
	for rows.Next() {
		var cid, notnull, pk int
		var name, dataType string
		var dflt interface{}
		require.NoError(t, rows.Scan(&cid, &name, &dataType, &notnull, &dflt, &pk))
		columns[name] = true
	}
	assert.True(t, columns["payment_date"])
	assert.True(t, columns["components"])
}
