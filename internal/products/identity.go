// Package products manages the shared product list: identity keying, the
// persistent store, catalog loading, filtering, and keyword search.
package products

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Identity derives the deterministic key addressing a product within the
// shared product list and the cart. Every run of characters that is not an
// ASCII letter or digit collapses to one underscore, and the result is
// lowercased so trivially different spellings of the same product collide
// onto one cart slot. Synthetic ingredient placeholders and real catalog
// rows go through this same function; that is the invariant that lets them
// share one keyspace.
func Identity(name, brand string) string {
	return strings.ToLower(nonAlnum.ReplaceAllString(name+"_"+brand, "_"))
}
