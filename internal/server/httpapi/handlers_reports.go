package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
	"github.com/dmitrijs2005/collectkeeper/internal/server/report"
	"github.com/dmitrijs2005/collectkeeper/internal/server/store"
	"github.com/gin-gonic/gin"
)

type reportRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type" binding:"required"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	CategoryID string `json:"categoryId"`
}

type reportResultResponse struct {
	Items      []CollectionItemDTO `json:"items"`
	TotalValue float64             `json:"totalValue"`
}

func reportFromRequest(req *reportRequest) (*models.Report, error) {
	rt, err := models.ParseReportType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	descriptor := &models.Report{
		Name:       req.Name,
		Type:       rt,
		CategoryID: req.CategoryID,
	}

	switch rt {
	case models.ReportTime:
		if req.StartDate == "" || req.EndDate == "" {
			return nil, fmt.Errorf("%w: time report needs startDate and endDate", common.ErrValidation)
		}
		start, err := parseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, fmt.Errorf("%w: endDate precedes startDate", common.ErrValidation)
		}
		descriptor.StartDate = start
		// include the whole end day
		descriptor.EndDate = end.Add(24*time.Hour - time.Nanosecond)
	case models.ReportCategory:
		if req.CategoryID == "" {
			return nil, fmt.Errorf("%w: category report needs categoryId", common.ErrValidation)
		}
	}

	return descriptor, nil
}

func materialize(s *store.Store, descriptor *models.Report) reportResultResponse {
	res := report.Generate(s.CollectionItems(), descriptor)

	items := make([]CollectionItemDTO, 0, len(res.Items))
	for _, i := range res.Items {
		items = append(items, toCollectionItemDTO(i))
	}
	return reportResultResponse{Items: items, TotalValue: res.TotalValue}
}

func (h *Handler) ListReports(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	reps := s.Reports()
	result := make([]ReportDTO, 0, len(reps))
	for _, r := range reps {
		result = append(result, toReportDTO(r))
	}
	c.JSON(http.StatusOK, result)
}

// CreateReport saves a report descriptor. Results are never stored; they are
// recomputed from the live collection on every request.
func (h *Handler) CreateReport(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	descriptor, err := reportFromRequest(&req)
	if err != nil {
		writeError(c, err)
		return
	}
	if descriptor.Name == "" {
		writeError(c, fmt.Errorf("%w: report name is required", common.ErrValidation))
		return
	}

	created, err := s.AddReport(c.Request.Context(), descriptor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReportDTO(created))
}

func (h *Handler) DeleteReport(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	if err := s.DeleteReport(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GenerateReport materializes an ad-hoc descriptor without saving it.
func (h *Handler) GenerateReport(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	descriptor, err := reportFromRequest(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, materialize(s, descriptor))
}

// ReportResult materializes a saved descriptor against the current
// collection.
func (h *Handler) ReportResult(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	descriptor, err := s.GetReportByID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, materialize(s, descriptor))
}

// ExportReport streams the materialized report as an xlsx workbook.
func (h *Handler) ExportReport(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	descriptor, err := s.GetReportByID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	res := report.Generate(s.CollectionItems(), descriptor)

	filename := fmt.Sprintf("report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := report.ExportXLSX(c.Writer, res.Items, s.Categories()); err != nil {
		h.logger.Error(c.Request.Context(), "report export failed", "id", descriptor.ID, "error", err)
		writeError(c, err)
	}
}
