package models

import (
	"fmt"
	"time"
)

// ReportType selects how a saved report filters collection items.
type ReportType string

const (
	ReportTime     ReportType = "time"
	ReportCategory ReportType = "category"
)

// ParseReportType validates a raw report type value.
func ParseReportType(s string) (ReportType, error) {
	switch r := ReportType(s); r {
	case ReportTime, ReportCategory:
		return r, nil
	default:
		return "", fmt.Errorf("unknown report type %q", s)
	}
}

// Report is a saved query descriptor, not a materialized result. The item
// list and total value are recomputed on demand from the current collection.
type Report struct {
	ID         string
	OwnerID    string
	Name       string
	Type       ReportType
	StartDate  time.Time
	EndDate    time.Time
	CategoryID string
	CreatedAt  time.Time
}
