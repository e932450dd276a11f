// Package models defines the server-side data models persisted for each
// owner: categories, collection items, wishlist items, media files and saved
// report descriptors.
package models

import "time"

// Category groups collection and wishlist items. Its name is cached on every
// item that references it (the CategoryName field), so a rename has to be
// cascaded into the dependents.
type Category struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   time.Time
}

// CategoryPatch describes a partial category update. Nil fields stay
// unchanged.
type CategoryPatch struct {
	Name        *string
	Description *string
}
