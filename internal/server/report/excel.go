package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName   = "Collection Items"
	maxColWidth = 50
)

var exportHeaders = []string{
	"Name", "Category", "Description", "Condition", "Price/Value", "Acquisition Date", "Notes",
}

// ExportXLSX writes the item list as a spreadsheet: one row per item, with
// the category name resolved from the given category set ("Unknown" if the
// category no longer exists). Column widths are sized to the longest cell,
// capped at 50 characters.
func ExportXLSX(w io.Writer, items []*models.CollectionItem, categories []*models.Category) error {
	byID := make(map[string]string, len(categories))
	for _, c := range categories {
		byID[c.ID] = c.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	widths := make([]float64, len(exportHeaders))
	for col, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
		widths[col] = float64(len(h))
	}

	for row, item := range items {
		category, ok := byID[item.CategoryID]
		if !ok {
			category = "Unknown"
		}

		values := []any{
			item.Name,
			category,
			item.Description,
			FormatCondition(item.Condition),
			item.Price,
			item.AcquisitionDate.Format("1/2/2006"),
			item.Notes,
		}

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
			if l := float64(len(fmt.Sprint(v))); l > widths[col] {
				widths[col] = l
			}
		}
	}

	for col := range exportHeaders {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		width := widths[col] + 2
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// FormatCondition turns a condition value into its display form:
// title-cased with hyphens replaced by spaces ("near-mint" -> "Near Mint").
func FormatCondition(c models.Condition) string {
	words := strings.Split(string(c), "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
