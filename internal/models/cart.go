package models

import "time"

// CartItem is one line of the active cart, keyed by product identity.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ShoppingListItem is one line of a locked shopping list.
type ShoppingListItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Checked   bool   `json:"checked"`
}

// ShoppingList is a snapshot of the cart taken when the user locks it and
// starts shopping. Items are checked off individually in the store.
type ShoppingList struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Items     []ShoppingListItem `json:"items"`
}
