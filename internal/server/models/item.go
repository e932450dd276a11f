package models

import (
	"fmt"
	"time"
)

// Condition grades the physical state of a collection item.
type Condition string

const (
	ConditionMint      Condition = "mint"
	ConditionNearMint  Condition = "near-mint"
	ConditionExcellent Condition = "excellent"
	ConditionVeryGood  Condition = "very-good"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

// ParseCondition validates a raw condition value.
func ParseCondition(s string) (Condition, error) {
	switch c := Condition(s); c {
	case ConditionMint, ConditionNearMint, ConditionExcellent,
		ConditionVeryGood, ConditionGood, ConditionFair, ConditionPoor:
		return c, nil
	default:
		return "", fmt.Errorf("unknown condition %q", s)
	}
}

// CollectionItem is a single object in the owner's collection.
//
// CategoryName is a cache of the referenced category's name as of the last
// write to either side; it is refreshed whenever the category is renamed.
type CollectionItem struct {
	ID              string
	OwnerID         string
	Name            string
	Description     string
	Condition       Condition
	Price           float64
	AcquisitionDate time.Time
	CategoryID      string
	CategoryName    string
	Notes           string
	MediaFiles      []*MediaFile
	CreatedAt       time.Time
}

// Clone returns a deep copy, so cached entities can be handed out without
// aliasing the store's internal state.
func (i *CollectionItem) Clone() *CollectionItem {
	c := *i
	if i.MediaFiles != nil {
		c.MediaFiles = make([]*MediaFile, len(i.MediaFiles))
		for n, m := range i.MediaFiles {
			mc := *m
			c.MediaFiles[n] = &mc
		}
	}
	return &c
}

// CollectionItemPatch describes a partial item update. Nil fields stay
// unchanged; a non-nil MediaFiles replaces the whole media set (the store
// reconciles it against the persisted one by id).
type CollectionItemPatch struct {
	Name            *string
	Description     *string
	Condition       *Condition
	Price           *float64
	AcquisitionDate *time.Time
	CategoryID      *string
	Notes           *string
	MediaFiles      []*MediaFile
}
