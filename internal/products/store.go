package products

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/b4ubuy/pantry/internal/models"
)

// Store persists the shared product list in SQLite, keyed by identity.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates a SQLite database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		identity TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		brand TEXT,
		quantity TEXT,
		category TEXT,
		country TEXT,
		stores TEXT,
		nutrition_grade TEXT,
		labels TEXT,
		code TEXT,
		mock INTEGER NOT NULL DEFAULT 0,
		extra TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

	CREATE TABLE IF NOT EXISTS cart_items (
		product_id TEXT PRIMARY KEY,
		quantity INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shopping_lists (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS shopping_list_items (
		list_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		checked INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (list_id, product_id),
		FOREIGN KEY (list_id) REFERENCES shopping_lists(id) ON DELETE CASCADE
	);
	`
	_, err := db.Exec(schema)
	return err
}

// DB exposes the underlying handle for collaborators sharing this database
// (the cart store keeps its tables alongside the product list, the way the
// original kept both under one local storage namespace).
func (s *Store) DB() *sql.DB {
	return s.db
}

// Merge inserts the product if no entry with the same identity exists.
// It reports whether a new row was added. Merging is idempotent: a product
// whose identity is already present is never duplicated.
func (s *Store) Merge(ctx context.Context, p *models.Product) (bool, error) {
	extraJSON, err := json.Marshal(p.Extra)
	if err != nil {
		return false, fmt.Errorf("failed to marshal extra columns: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO products
		 (identity, name, brand, quantity, category, country, stores, nutrition_grade, labels, code, mock, extra)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		Identity(p.Name, p.Brand), p.Name, p.Brand, p.Quantity, p.Category, p.Country,
		p.Stores, p.NutritionGrade, p.Labels, p.Code, boolToInt(p.Mock), string(extraJSON),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get returns the product with the given identity, or nil when absent.
func (s *Store) Get(ctx context.Context, identity string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, brand, quantity, category, country, stores, nutrition_grade, labels, code, mock, extra
		 FROM products WHERE identity = ?`, identity)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// List returns every product in insertion order.
func (s *Store) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, brand, quantity, category, country, stores, nutrition_grade, labels, code, mock, extra
		 FROM products ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Count returns the number of products in the store.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var mock int
	var extraJSON string
	err := row.Scan(&p.Name, &p.Brand, &p.Quantity, &p.Category, &p.Country,
		&p.Stores, &p.NutritionGrade, &p.Labels, &p.Code, &mock, &extraJSON)
	if err != nil {
		return nil, err
	}
	p.Mock = mock != 0
	if extraJSON != "" && extraJSON != "null" {
		if err := json.Unmarshal([]byte(extraJSON), &p.Extra); err != nil {
			return nil, fmt.Errorf("failed to unmarshal extra columns: %w", err)
		}
	}
	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
