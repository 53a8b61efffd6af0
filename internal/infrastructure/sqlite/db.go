package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/invorya/pos-ledger/internal/domain/entity"
	"github.com/invorya/pos-ledger/pkg/config"
)

// Open abre la base de datos SQLite con WAL y busy_timeout (vía DSN) y
// verifica la conexión. SQLite serializa escrituras: una sola conexión de
// escritura evita "database is locked" espurios entre goroutines del propio
// proceso; la contención real la absorbe el Executor.
func Open(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// Migrate crea el esquema si no existe y siembra el catálogo de tipos de
// movimiento. La siembra es idempotente; el catálogo es inmutable después.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrar esquema: %w", err)
		}
	}
	return seedMovementTypes(ctx, db)
}

func seedMovementTypes(ctx context.Context, db *sql.DB) error {
	const q = `
		INSERT INTO movement_types (id, name, affects_quantity, affects_stock, description)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`
	for _, mt := range entity.MovementTypes() {
		if _, err := db.ExecContext(ctx, q, mt.ID, mt.Name, mt.AffectsQuantity, mt.AffectsStock, mt.Description); err != nil {
			return fmt.Errorf("sembrar tipo de movimiento %q: %w", mt.Name, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS movement_types (
		id               INTEGER PRIMARY KEY,
		name             TEXT NOT NULL UNIQUE,
		affects_quantity INTEGER NOT NULL,
		affects_stock    INTEGER NOT NULL,
		description      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		code        TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		quantity    INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		min_stock   INTEGER NOT NULL DEFAULT 0,
		max_stock   INTEGER NOT NULL DEFAULT 0,
		cost        TEXT NOT NULL DEFAULT '0',
		price       TEXT NOT NULL DEFAULT '0',
		supplier_id INTEGER,
		expires_at  TIMESTAMP,
		active      INTEGER NOT NULL DEFAULT 1,
		created_at  TIMESTAMP NOT NULL,
		updated_at  TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_movements (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id           INTEGER NOT NULL REFERENCES inventory(id),
		movement_type_id  INTEGER NOT NULL REFERENCES movement_types(id),
		quantity_change   INTEGER NOT NULL,
		stock_change      INTEGER NOT NULL,
		previous_quantity INTEGER NOT NULL,
		new_quantity      INTEGER NOT NULL,
		previous_stock    INTEGER NOT NULL,
		new_stock         INTEGER NOT NULL,
		user_id           INTEGER NOT NULL,
		reference_id      INTEGER,
		reference_type    TEXT NOT NULL DEFAULT '',
		notes             TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_item ON inventory_movements (item_id, id)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_reference ON inventory_movements (reference_type, reference_id)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_id  INTEGER NOT NULL,
		status       TEXT NOT NULL,
		total        TEXT NOT NULL DEFAULT '0',
		created_by   INTEGER NOT NULL,
		created_at   TIMESTAMP NOT NULL,
		cancelled_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS invoice_details (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		invoice_id INTEGER NOT NULL REFERENCES invoices(id),
		item_id    INTEGER NOT NULL REFERENCES inventory(id),
		quantity   INTEGER NOT NULL,
		unit_price TEXT NOT NULL,
		subtotal   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS purchases (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		supplier_id  INTEGER NOT NULL,
		mode         TEXT NOT NULL,
		status       TEXT NOT NULL,
		total        TEXT NOT NULL DEFAULT '0',
		created_by   INTEGER NOT NULL,
		created_at   TIMESTAMP NOT NULL,
		cancelled_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_details (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		purchase_id INTEGER NOT NULL REFERENCES purchases(id),
		item_id     INTEGER NOT NULL REFERENCES inventory(id),
		quantity    INTEGER NOT NULL,
		unit_cost   TEXT NOT NULL,
		subtotal    TEXT NOT NULL
	)`,
}
