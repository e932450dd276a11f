package httpapi

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
)

const dateLayout = "2006-01-02"

// Wire DTOs. Dates travel as "YYYY-MM-DD" strings, which is what the SPA's
// date inputs produce.

type CategoryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type MediaFileDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	StorageKey   string    `json:"storageKey,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CollectionItemDTO struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Condition       string         `json:"condition"`
	Price           float64        `json:"price"`
	AcquisitionDate string         `json:"acquisitionDate"`
	CategoryID      string         `json:"categoryId"`
	CategoryName    string         `json:"categoryName"`
	Notes           string         `json:"notes,omitempty"`
	MediaFiles      []MediaFileDTO `json:"mediaFiles"`
	CreatedAt       time.Time      `json:"createdAt"`
}

type WishlistItemDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ReportDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	StartDate  string    `json:"startDate,omitempty"`
	EndDate    string    `json:"endDate,omitempty"`
	CategoryID string    `json:"categoryId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toCategoryDTO(c *models.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}

func toMediaFileDTO(m *models.MediaFile) MediaFileDTO {
	return MediaFileDTO{
		ID:           m.ID,
		Name:         m.Name,
		Type:         string(m.Type),
		URL:          m.URL,
		ThumbnailURL: m.ThumbnailURL,
		StorageKey:   m.StorageKey,
		CreatedAt:    m.CreatedAt,
	}
}

func toCollectionItemDTO(i *models.CollectionItem) CollectionItemDTO {
	media := make([]MediaFileDTO, 0, len(i.MediaFiles))
	for _, m := range i.MediaFiles {
		media = append(media, toMediaFileDTO(m))
	}
	return CollectionItemDTO{
		ID:              i.ID,
		Name:            i.Name,
		Description:     i.Description,
		Condition:       string(i.Condition),
		Price:           i.Price,
		AcquisitionDate: i.AcquisitionDate.Format(dateLayout),
		CategoryID:      i.CategoryID,
		CategoryName:    i.CategoryName,
		Notes:           i.Notes,
		MediaFiles:      media,
		CreatedAt:       i.CreatedAt,
	}
}

func toWishlistItemDTO(w *models.WishlistItem) WishlistItemDTO {
	return WishlistItemDTO{
		ID:           w.ID,
		Name:         w.Name,
		Description:  w.Description,
		Price:        w.Price,
		CategoryID:   w.CategoryID,
		CategoryName: w.CategoryName,
		CreatedAt:    w.CreatedAt,
	}
}

func toReportDTO(r *models.Report) ReportDTO {
	dto := ReportDTO{
		ID:         r.ID,
		Name:       r.Name,
		Type:       string(r.Type),
		CategoryID: r.CategoryID,
		CreatedAt:  r.CreatedAt,
	}
	if !r.StartDate.IsZero() {
		dto.StartDate = r.StartDate.Format(dateLayout)
	}
	if !r.EndDate.IsZero() {
		dto.EndDate = r.EndDate.Format(dateLayout)
	}
	return dto
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", common.ErrValidation, s)
	}
	return t, nil
}

func mediaFilesFromDTO(dtos []MediaFileDTO) ([]*models.MediaFile, error) {
	if dtos == nil {
		return nil, nil
	}
	files := make([]*models.MediaFile, 0, len(dtos))
	for _, d := range dtos {
		mt, err := models.ParseMediaType(d.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
		files = append(files, &models.MediaFile{
			ID:           d.ID,
			Name:         d.Name,
			Type:         mt,
			URL:          d.URL,
			ThumbnailURL: d.ThumbnailURL,
			StorageKey:   d.StorageKey,
		})
	}
	return files, nil
}
