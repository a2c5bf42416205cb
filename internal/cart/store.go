// Package cart persists the active cart and locked shopping lists, keyed by
// product identity so real and placeholder products share one keyspace.
package cart

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/b4ubuy/pantry/internal/models"
	"github.com/b4ubuy/pantry/internal/products"
)

// Store manages cart and shopping-list tables. It shares the product store's
// database so cart rows and product rows live in one place, like the single
// browser storage namespace they replace.
type Store struct {
	db       *sql.DB
	products *products.Store
	logger   *zap.Logger
}

// NewStore creates a cart store on top of the product store's database.
// The logger may be nil.
func NewStore(ps *products.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: ps.DB(), products: ps, logger: logger}
}

// Add puts one unit of the product in the cart, replacing any previous
// quantity.
func (s *Store) Add(ctx context.Context, productID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_items (product_id, quantity) VALUES (?, 1)
		 ON CONFLICT(product_id) DO UPDATE SET quantity = 1`, productID)
	return err
}

// Increment adds one unit, inserting the row if absent.
func (s *Store) Increment(ctx context.Context, productID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_items (product_id, quantity) VALUES (?, 1)
		 ON CONFLICT(product_id) DO UPDATE SET quantity = quantity + 1`, productID)
	return err
}

// Decrement removes one unit; at quantity 1 the row is deleted.
func (s *Store) Decrement(ctx context.Context, productID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var qty int
	err = tx.QueryRowContext(ctx,
		`SELECT quantity FROM cart_items WHERE product_id = ?`, productID).Scan(&qty)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	if qty > 1 {
		_, err = tx.ExecContext(ctx,
			`UPDATE cart_items SET quantity = quantity - 1 WHERE product_id = ?`, productID)
	} else {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM cart_items WHERE product_id = ?`, productID)
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Quantity returns the cart quantity for a product, zero when absent.
func (s *Store) Quantity(ctx context.Context, productID string) (int, error) {
	var qty int
	err := s.db.QueryRowContext(ctx,
		`SELECT quantity FROM cart_items WHERE product_id = ?`, productID).Scan(&qty)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return qty, err
}

// Items returns every cart line in insertion order.
func (s *Store) Items(ctx context.Context) ([]models.CartItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id, quantity FROM cart_items ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var it models.CartItem
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Count returns the total number of units in the cart.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM cart_items`).Scan(&n)
	return n, err
}

// AddIngredients adds every resolved ingredient's best match to the cart and
// merges its placeholder into the shared product list so cart rendering can
// find it. Returns the number of items added. Two ingredients resolving to
// the same identity land on the same cart slot and on one product entry.
func (s *Store) AddIngredients(ctx context.Context, matched []models.MatchedIngredient) (int, error) {
	added := 0
	for _, m := range matched {
		if m.BestMatch == nil {
			continue
		}
		productID := products.Identity(m.BestMatch.Name, m.BestMatch.Brand)
		if err := s.Increment(ctx, productID); err != nil {
			return added, fmt.Errorf("failed to add %s to cart: %w", productID, err)
		}
		if _, err := s.products.Merge(ctx, m.BestMatch); err != nil {
			return added, fmt.Errorf("failed to merge placeholder %s: %w", productID, err)
		}
		added++
	}
	s.logger.Debug("ingredients added to cart", zap.Int("added", added))
	return added, nil
}

// Lock snapshots the current cart into a new shopping list and returns it.
// The cart itself is left untouched; the list carries its own checked flags
// for the in-store checklist.
func (s *Store) Lock(ctx context.Context) (*models.ShoppingList, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot lock an empty cart")
	}

	list := &models.ShoppingList{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO shopping_lists (id, created_at) VALUES (?, ?)`,
		list.ID, list.CreatedAt); err != nil {
		return nil, err
	}
	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO shopping_list_items (list_id, product_id, quantity, checked)
			 VALUES (?, ?, ?, 0)`,
			list.ID, it.ProductID, it.Quantity); err != nil {
			return nil, err
		}
		list.Items = append(list.Items, models.ShoppingListItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.logger.Info("cart locked into shopping list",
		zap.String("list_id", list.ID), zap.Int("items", len(list.Items)))
	return list, nil
}

// GetList returns a shopping list with its items, or nil when absent.
func (s *Store) GetList(ctx context.Context, id string) (*models.ShoppingList, error) {
	list := &models.ShoppingList{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at FROM shopping_lists WHERE id = ?`, id).Scan(&list.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id, quantity, checked FROM shopping_list_items
		 WHERE list_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it models.ShoppingListItem
		var checked int
		if err := rows.Scan(&it.ProductID, &it.Quantity, &checked); err != nil {
			return nil, err
		}
		it.Checked = checked != 0
		list.Items = append(list.Items, it)
	}
	return list, rows.Err()
}

// Lists returns all shopping lists, newest first, without their items.
func (s *Store) Lists(ctx context.Context) ([]models.ShoppingList, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at FROM shopping_lists ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []models.ShoppingList
	for rows.Next() {
		var l models.ShoppingList
		if err := rows.Scan(&l.ID, &l.CreatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// CheckItem sets the checked flag on one shopping list line.
func (s *Store) CheckItem(ctx context.Context, listID, productID string, checked bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE shopping_list_items SET checked = ? WHERE list_id = ? AND product_id = ?`,
		boolToInt(checked), listID, productID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no such item %s in list %s", productID, listID)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
