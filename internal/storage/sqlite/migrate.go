package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	run     func(ctx context.Context, tx *sql.Tx) error
}

var migrations = []migration{
	{1, "create rooms and bills", migrateCreateTables},
	{2, "rebuild legacy bills schema", migrateLegacyBills},
}

// Migrate brings the database to the current schema version. It is run once
// on startup, before any store is handed out, and is safe to run on every
// startup: applied versions are recorded in schema_migrations and skipped.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createSchemaVersionSQL); err != nil {
		return fmt.Errorf("migrate: create version table: %w", err)
	}

	var current sql.NullInt64
	if err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("migrate: read version: %w", err)
	}

	for _, m := range migrations {
		if current.Valid && m.version <= int(current.Int64) {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("migrate v%d: begin: %w", m.version, err)
		}
		if err := m.run(ctx, tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migrate v%d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migrate v%d: record version: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migrate v%d: commit: %w", m.version, err)
		}
	}
	return nil
}

func migrateCreateTables(ctx context.Context, tx *sql.Tx) error {
	// IF NOT EXISTS on purpose: a pre-existing legacy bills table must
	// survive until v2 inspects it.
	if _, err := tx.ExecContext(ctx, createRoomsSQL); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, createBillsSQL)
	return err
}

// migrateLegacyBills detects the old ledger layout (a days column, no
// nights) and rebuilds the table losslessly. Databases created with the
// current schema pass straight through.
func migrateLegacyBills(ctx context.Context, tx *sql.Tx) error {
	cols, err := tableColumns(ctx, tx, "bills")
	if err != nil {
		return err
	}
	if !cols["days"] || cols["nights"] {
		return nil
	}
	if _, err := tx.ExecContext(ctx, createBillsNewSQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, copyLegacyBillsSQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DROP TABLE bills`); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `ALTER TABLE bills_new RENAME TO bills`)
	return err
}

func tableColumns(ctx context.Context, tx *sql.Tx, table string) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var (
			cid       int
			name, typ string
			notNull   int
			dflt      sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
