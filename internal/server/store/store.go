// Package store implements the per-owner collection store: an in-memory
// cache of the owner's categories, collection items, wishlist items and
// saved report descriptors, kept synchronized write-through with a
// persistence adapter.
//
// Consistency contract: the cache is never updated ahead of persistence —
// every mutation first goes to the repositories and only on success into the
// maps, so a failed operation leaves the cache untouched. Failed operations
// are never retried here; the caller re-triggers the action.
//
// Concurrent updates to the same entity are resolved last-write-wins. The
// store serializes its operations with a single mutex, which is enough for
// the expected load of one owner driving one UI.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/dmitrijs2005/collectkeeper/internal/dbx"
	"github.com/dmitrijs2005/collectkeeper/internal/logging"
	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/repomanager"
)

// starterCategories seeds a first-time owner's category set.
var starterCategories = []struct {
	Name        string
	Description string
}{
	{"Books", "Literary collections"},
	{"Coins", "Numismatic collection"},
}

// Store caches one owner's four entity collections. A Store starts unloaded;
// Open populates it in bulk and Close discards everything unconditionally
// (no flush is needed because every mutation is persisted synchronously).
type Store struct {
	ownerID string
	db      *sql.DB // nil when the in-memory adapter is used
	repos   repomanager.RepositoryManager
	logger  logging.Logger

	mu         sync.RWMutex
	loaded     bool
	categories map[string]*models.Category
	items      map[string]*models.CollectionItem
	wishlist   map[string]*models.WishlistItem
	reports    map[string]*models.Report
}

func New(ownerID string, db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *Store {
	return &Store{
		ownerID: ownerID,
		db:      db,
		repos:   repos,
		logger:  logger.With("owner", ownerID),
	}
}

func (s *Store) OwnerID() string {
	return s.ownerID
}

// withTx runs fn transactionally when a SQL database backs the store, and
// directly against the singleton repositories otherwise.
func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}

// persistErr classifies a repository failure: sentinel errors pass through
// for errors.Is matching, anything else surfaces as ErrPersistence.
func persistErr(err error) error {
	if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrAlreadyExists) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrPersistence, err)
}

// Open performs the bulk session load: all four collections are fetched for
// the owner, and a starter category set is created for a first-time owner.
// On failure the store keeps its previous (empty) state and returns ErrLoad.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	catRepo := s.repos.Categories(s.db)
	itemRepo := s.repos.Items(s.db)
	wishRepo := s.repos.Wishlist(s.db)
	mediaRepo := s.repos.MediaFiles(s.db)
	reportRepo := s.repos.Reports(s.db)

	cats, err := catRepo.SelectByOwner(ctx, s.ownerID)
	if err != nil {
		return fmt.Errorf("%w: loading categories: %v", common.ErrLoad, err)
	}

	if len(cats) == 0 {
		for _, sc := range starterCategories {
			c, err := catRepo.Create(ctx, &models.Category{
				OwnerID:     s.ownerID,
				Name:        sc.Name,
				Description: sc.Description,
			})
			if err != nil {
				return fmt.Errorf("%w: seeding categories: %v", common.ErrLoad, err)
			}
			cats = append(cats, c)
		}
	}

	items, err := itemRepo.SelectByOwner(ctx, s.ownerID)
	if err != nil {
		return fmt.Errorf("%w: loading items: %v", common.ErrLoad, err)
	}

	wish, err := wishRepo.SelectByOwner(ctx, s.ownerID)
	if err != nil {
		return fmt.Errorf("%w: loading wishlist: %v", common.ErrLoad, err)
	}

	media, err := mediaRepo.SelectByOwner(ctx, s.ownerID)
	if err != nil {
		return fmt.Errorf("%w: loading media files: %v", common.ErrLoad, err)
	}

	reps, err := reportRepo.SelectByOwner(ctx, s.ownerID)
	if err != nil {
		return fmt.Errorf("%w: loading reports: %v", common.ErrLoad, err)
	}

	byName := make(map[string]string, len(cats)) // category id -> name
	s.categories = make(map[string]*models.Category, len(cats))
	for _, c := range cats {
		s.categories[c.ID] = c
		byName[c.ID] = c.Name
	}

	byItem := make(map[string][]*models.MediaFile)
	for _, m := range media {
		byItem[m.ItemID] = append(byItem[m.ItemID], m)
	}

	s.items = make(map[string]*models.CollectionItem, len(items))
	for _, i := range items {
		// refresh the cached name from the just-loaded category set
		if name, ok := byName[i.CategoryID]; ok {
			i.CategoryName = name
		}
		i.MediaFiles = byItem[i.ID]
		s.items[i.ID] = i
	}

	s.wishlist = make(map[string]*models.WishlistItem, len(wish))
	for _, w := range wish {
		if name, ok := byName[w.CategoryID]; ok {
			w.CategoryName = name
		}
		s.wishlist[w.ID] = w
	}

	s.reports = make(map[string]*models.Report, len(reps))
	for _, r := range reps {
		s.reports[r.ID] = r
	}

	s.loaded = true
	s.logger.Info(ctx, "store opened",
		"categories", len(s.categories), "items", len(s.items),
		"wishlist", len(s.wishlist), "reports", len(s.reports))
	return nil
}

// Close discards all in-memory state unconditionally.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = false
	s.categories = nil
	s.items = nil
	s.wishlist = nil
	s.reports = nil
}

func (s *Store) requireLoaded() error {
	if !s.loaded {
		return common.ErrNotAuthenticated
	}
	return nil
}

// Categories

func (s *Store) AddCategory(ctx context.Context, name, description string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", common.ErrValidation)
	}

	created, err := s.repos.Categories(s.db).Create(ctx, &models.Category{
		OwnerID:     s.ownerID,
		Name:        name,
		Description: description,
	})
	if err != nil {
		s.logger.Error(ctx, "add category failed", "error", err)
		return nil, persistErr(err)
	}

	s.categories[created.ID] = created
	c := *created
	return &c, nil
}

// UpdateCategory merges the patch into the category and, when the name
// changes, cascades the new name into the category_name cache of every
// dependent collection and wishlist item. With the SQL adapter the category
// update and both cascades run in one transaction, so the persisted state
// never diverges from the cache.
func (s *Store) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return nil, err
	}

	current, ok := s.categories[id]
	if !ok {
		return nil, common.ErrNotFound
	}

	merged := *current
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if merged.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", common.ErrValidation)
	}

	nameChanged := merged.Name != current.Name

	err := s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Categories(tx).Update(ctx, &merged); err != nil {
			return err
		}
		if !nameChanged {
			return nil
		}
		if err := s.repos.Items(tx).UpdateCategoryName(ctx, s.ownerID, id, merged.Name); err != nil {
			return err
		}
		return s.repos.Wishlist(tx).UpdateCategoryName(ctx, s.ownerID, id, merged.Name)
	})
	if err != nil {
		s.logger.Error(ctx, "update category failed", "id", id, "error", err)
		return nil, persistErr(err)
	}

	s.categories[id] = &merged
	if nameChanged {
		for _, i := range s.items {
			if i.CategoryID == id {
				i.CategoryName = merged.Name
			}
		}
		for _, w := range s.wishlist {
			if w.CategoryID == id {
				w.CategoryName = merged.Name
			}
		}
	}

	c := merged
	return &c, nil
}

// DeleteCategory refuses to remove a category still referenced by any
// collection or wishlist item; the check runs before any persistence call.
// Deleting an absent category is a no-op.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return err
	}

	for _, i := range s.items {
		if i.CategoryID == id {
			return common.ErrCategoryInUse
		}
	}
	for _, w := range s.wishlist {
		if w.CategoryID == id {
			return common.ErrCategoryInUse
		}
	}

	if _, ok := s.categories[id]; !ok {
		return nil
	}

	if err := s.repos.Categories(s.db).Delete(ctx, s.ownerID, id); err != nil {
		s.logger.Error(ctx, "delete category failed", "id", id, "error", err)
		return persistErr(err)
	}

	delete(s.categories, id)
	return nil
}

// Collection items

func (s *Store) validateItem(item *models.CollectionItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", common.ErrValidation)
	}
	if _, err := models.ParseCondition(string(item.Condition)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", common.ErrValidation)
	}
	if item.AcquisitionDate.After(time.Now()) {
		return fmt.Errorf("%w: acquisition date must not be in the future", common.ErrValidation)
	}
	if _, ok := s.categories[item.CategoryID]; !ok {
		return fmt.Errorf("%w: unknown category %q", common.ErrValidation, item.CategoryID)
	}
	return nil
}

// AddCollectionItem persists the item and each attached media file as a
// separate linked record, then caches the result. The cached category name
// is resolved from the current local category set.
func (s *Store) AddCollectionItem(ctx context.Context, item *models.CollectionItem) (*models.CollectionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return nil, err
	}
	if err := s.validateItem(item); err != nil {
		return nil, err
	}

	toCreate := item.Clone()
	toCreate.OwnerID = s.ownerID
	toCreate.CategoryName = s.categories[item.CategoryID].Name
	attachments := toCreate.MediaFiles
	toCreate.MediaFiles = nil

	var created *models.CollectionItem
	err := s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repos.Items(tx).Create(ctx, toCreate)
		if err != nil {
			return err
		}
		mediaRepo := s.repos.MediaFiles(tx)
		for _, m := range attachments {
			m.ItemID = created.ID
			m.OwnerID = s.ownerID
			mf, err := mediaRepo.Create(ctx, m)
			if err != nil {
				return err
			}
			created.MediaFiles = append(created.MediaFiles, mf)
		}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "add item failed", "error", err)
		return nil, persistErr(err)
	}

	s.items[created.ID] = created
	return created.Clone(), nil
}

// UpdateCollectionItem merges the patch and, when a new media set is given,
// reconciles it against the persisted one by id: removed entries are
// deleted, new entries (empty id) are created, surviving entries are kept.
// The calls run sequentially; with the SQL adapter they share a transaction.
func (s *Store) UpdateCollectionItem(ctx context.Context, id string, patch models.CollectionItemPatch) (*models.CollectionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return nil, err
	}

	current, ok := s.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}

	merged := current.Clone()
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Condition != nil {
		merged.Condition = *patch.Condition
	}
	if patch.Price != nil {
		merged.Price = *patch.Price
	}
	if patch.AcquisitionDate != nil {
		merged.AcquisitionDate = *patch.AcquisitionDate
	}
	if patch.CategoryID != nil {
		merged.CategoryID = *patch.CategoryID
	}
	if patch.Notes != nil {
		merged.Notes = *patch.Notes
	}
	if err := s.validateItem(merged); err != nil {
		return nil, err
	}
	merged.CategoryName = s.categories[merged.CategoryID].Name

	var toAdd, toKeep []*models.MediaFile
	var toRemove []string
	if patch.MediaFiles != nil {
		desired := make(map[string]struct{}, len(patch.MediaFiles))
		existing := make(map[string]*models.MediaFile, len(current.MediaFiles))
		for _, m := range current.MediaFiles {
			existing[m.ID] = m
		}
		for _, m := range patch.MediaFiles {
			if m.ID == "" {
				toAdd = append(toAdd, m)
				continue
			}
			desired[m.ID] = struct{}{}
			if kept, ok := existing[m.ID]; ok {
				toKeep = append(toKeep, kept)
			} else {
				toAdd = append(toAdd, m)
			}
		}
		for id := range existing {
			if _, ok := desired[id]; !ok {
				toRemove = append(toRemove, id)
			}
		}
	}

	err := s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Items(tx).Update(ctx, merged); err != nil {
			return err
		}
		if patch.MediaFiles == nil {
			return nil
		}
		mediaRepo := s.repos.MediaFiles(tx)
		for _, mid := range toRemove {
			if err := mediaRepo.Delete(ctx, s.ownerID, mid); err != nil {
				return err
			}
		}
		merged.MediaFiles = toKeep
		for _, m := range toAdd {
			m.ItemID = id
			m.OwnerID = s.ownerID
			mf, err := mediaRepo.Create(ctx, m)
			if err != nil {
				return err
			}
			merged.MediaFiles = append(merged.MediaFiles, mf)
		}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "update item failed", "id", id, "error", err)
		return nil, persistErr(err)
	}

	s.items[id] = merged
	return merged.Clone(), nil
}

// DeleteCollectionItem removes the item and its media records. Deleting an
// absent item is a no-op.
func (s *Store) DeleteCollectionItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return err
	}

	if _, ok := s.items[id]; !ok {
		return nil
	}

	err := s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.MediaFiles(tx).DeleteByItem(ctx, s.ownerID, id); err != nil {
			return err
		}
		return s.repos.Items(tx).Delete(ctx, s.ownerID, id)
	})
	if err != nil {
		s.logger.Error(ctx, "delete item failed", "id", id, "error", err)
		return persistErr(err)
	}

	delete(s.items, id)
	return nil
}

// Wishlist items

func (s *Store) validateWishlistItem(item *models.WishlistItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", common.ErrValidation)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", common.ErrValidation)
	}
	if _, ok := s.categories[item.CategoryID]; !ok {
		return fmt.Errorf("%w: unknown category %q", common.ErrValidation, item.CategoryID)
	}
	return nil
}

func (s *Store) AddWishlistItem(ctx context.Context, item *models.WishlistItem) (*models.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return nil, err
	}
	if err := s.validateWishlistItem(item); err != nil {
		return nil, err
	}

	toCreate := *item
	toCreate.OwnerID = s.ownerID
	toCreate.CategoryName = s.categories[item.CategoryID].Name

	created, err := s.repos.Wishlist(s.db).Create(ctx, &toCreate)
	if err != nil {
		s.logger.Error(ctx, "add wishlist item failed", "error", err)
		return nil, persistErr(err)
	}

	s.wishlist[created.ID] = created
	c := *created
	return &c, nil
}

func (s *Store) UpdateWishlistItem(ctx context.Context, id string, patch models.WishlistItemPatch) (*models.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return nil, err
	}

	current, ok := s.wishlist[id]
	if !ok {
		return nil, common.ErrNotFound
	}

	merged := *current
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Price != nil {
		merged.Price = *patch.Price
	}
	if patch.CategoryID != nil {
		merged.CategoryID = *patch.CategoryID
	}
	if err := s.validateWishlistItem(&merged); err != nil {
		return nil, err
	}
	merged.CategoryName = s.categories[merged.CategoryID].Name

	if err := s.repos.Wishlist(s.db).Update(ctx, &merged); err != nil {
		s.logger.Error(ctx, "update wishlist item failed", "id", id, "error", err)
		return nil, persistErr(err)
	}

	s.wishlist[id] = &merged
	c := merged
	return &c, nil
}

func (s *Store) DeleteWishlistItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return err
	}

	if _, ok := s.wishlist[id]; !ok {
		return nil
	}

	if err := s.repos.Wishlist(s.db).Delete(ctx, s.ownerID, id); err != nil {
		s.logger.Error(ctx, "delete wishlist item failed", "id", id, "error", err)
		return persistErr(err)
	}

	delete(s.wishlist, id)
	return nil
}

// Reports

func (s *Store) AddReport(ctx context.Context, report *models.Report) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return nil, err
	}
	if _, err := models.ParseReportType(string(report.Type)); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	toCreate := *report
	toCreate.OwnerID = s.ownerID

	created, err := s.repos.Reports(s.db).Create(ctx, &toCreate)
	if err != nil {
		s.logger.Error(ctx, "add report failed", "error", err)
		return nil, persistErr(err)
	}

	s.reports[created.ID] = created
	c := *created
	return &c, nil
}

func (s *Store) DeleteReport(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return err
	}

	if _, ok := s.reports[id]; !ok {
		return nil
	}

	if err := s.repos.Reports(s.db).Delete(ctx, s.ownerID, id); err != nil {
		s.logger.Error(ctx, "delete report failed", "id", id, "error", err)
		return persistErr(err)
	}

	delete(s.reports, id)
	return nil
}

// Snapshot accessors. Collections are unordered; any presentation ordering
// is applied by consumers.

func (s *Store) Categories() []*models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		clone := *c
		result = append(result, &clone)
	}
	return result
}

func (s *Store) CollectionItems() []*models.CollectionItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.CollectionItem, 0, len(s.items))
	for _, i := range s.items {
		result = append(result, i.Clone())
	}
	return result
}

func (s *Store) WishlistItems() []*models.WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.WishlistItem, 0, len(s.wishlist))
	for _, w := range s.wishlist {
		clone := *w
		result = append(result, &clone)
	}
	return result
}

func (s *Store) Reports() []*models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Report, 0, len(s.reports))
	for _, r := range s.reports {
		clone := *r
		result = append(result, &clone)
	}
	return result
}

func (s *Store) GetCategoryByID(id string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (s *Store) GetCollectionItemByID(id string) (*models.CollectionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return i.Clone(), nil
}

func (s *Store) GetWishlistItemByID(id string) (*models.WishlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.wishlist[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *w
	return &clone, nil
}

func (s *Store) GetReportByID(id string) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *r
	return &clone, nil
}
