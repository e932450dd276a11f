// Package report materializes saved report descriptors against a snapshot
// of the collection and exports item lists as spreadsheets. Results are
// transient computations, never persisted.
package report

import (
	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
)

// Result is a materialized report: the matching items and the sum of their
// prices.
type Result struct {
	Items      []*models.CollectionItem
	TotalValue float64
}

// Generate filters the given items by the descriptor. Time reports match
// acquisition dates within [StartDate, EndDate], inclusive on both bounds;
// category reports match the category id exactly.
func Generate(items []*models.CollectionItem, descriptor *models.Report) *Result {
	result := &Result{Items: []*models.CollectionItem{}}

	for _, item := range items {
		switch descriptor.Type {
		case models.ReportTime:
			d := item.AcquisitionDate
			if d.Before(descriptor.StartDate) || d.After(descriptor.EndDate) {
				continue
			}
		case models.ReportCategory:
			if item.CategoryID != descriptor.CategoryID {
				continue
			}
		default:
			continue
		}
		result.Items = append(result.Items, item)
		result.TotalValue += item.Price
	}

	return result
}
