package models

import "time"

// WishlistItem is an object the owner wants but does not have yet.
// CategoryName follows the same caching rule as CollectionItem.
type WishlistItem struct {
	ID           string
	OwnerID      string
	Name         string
	Description  string
	Price        float64
	CategoryID   string
	CategoryName string
	CreatedAt    time.Time
}

// WishlistItemPatch describes a partial wishlist update. Nil fields stay
// unchanged.
type WishlistItemPatch struct {
	Name        *string
	Description *string
	Price       *float64
	CategoryID  *string
}
