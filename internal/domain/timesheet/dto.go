package timesheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// ========================================
// LEDGER DTOs
// ========================================

type ClockActionRequest struct {
	Action string `json:"action"`

	// Parsed by Validate
	Type EventType `json:"-"`
}

func (r *ClockActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Action) {
		errs.Add("action", "action is required")
		return errs
	}

	eventType, ok := ParseEventType(r.Action)
	if !ok {
		errs.Add("action", "action must be one of TIME_IN, BREAK, TIME_OUT")
		return errs
	}
	r.Type = eventType

	return nil
}

type ClockActionResponse struct {
	Action       EventType `json:"action"`
	Time         time.Time `json:"time"`
	State        string    `json:"state"`
	TotalTime    string    `json:"totalTime"`
	TotalSeconds int64     `json:"totalSeconds"`
}

// ========================================
// IMPORT DTOs
// ========================================

type ImportRequest struct {
	Logs []RawLogRow `json:"logs"`

	// Archive holds the raw upload, if any, for storage after a successful import.
	Archive     []byte `json:"-"`
	ArchiveName string `json:"-"`
}

func (r *ImportRequest) Validate(maxRows int) error {
	var errs validator.ValidationErrors

	if len(r.Logs) == 0 {
		errs.Add("logs", "logs must contain at least one row")
	}
	if maxRows > 0 && len(r.Logs) > maxRows {
		errs.Add("logs", fmt.Sprintf("logs must not exceed %d rows", maxRows))
	}

	return errs.Err()
}

type ImportedDay struct {
	Date         string `json:"date"`
	Events       int    `json:"events"`
	TotalTime    string `json:"totalTime"`
	TotalSeconds int64  `json:"totalSeconds"`
}

type ImportResponse struct {
	Imported int           `json:"imported"`
	Days     []ImportedDay `json:"days"`
}

// ========================================
// READ DTOs
// ========================================

type DailySummaryResponse struct {
	FullName     string `json:"fullName"`
	Date         string `json:"date"`
	TotalTime    string `json:"totalTime"`
	TotalSeconds int64  `json:"totalSeconds"`
	TimeIn       string `json:"timeIn"`
	TimeOut      string `json:"timeOut"`
	TimeSpan     string `json:"timeSpan"`
}

// NewDailySummaryResponse formats a summary for display. The span runs from
// the first to the last event recorded that day.
func NewDailySummaryResponse(fullName string, s DailySummary) DailySummaryResponse {
	resp := DailySummaryResponse{
		FullName:     fullName,
		Date:         s.Date.UTC().Format(DisplayDateLayout),
		TotalTime:    FormatDuration(s.TotalSeconds),
		TotalSeconds: s.TotalSeconds,
	}

	if s.FirstEventAt != nil {
		resp.TimeIn = s.FirstEventAt.UTC().Format(DisplayTimeLayout)
	}
	if s.LastEventAt != nil && (s.FirstEventAt == nil || !s.LastEventAt.Equal(*s.FirstEventAt)) {
		resp.TimeOut = s.LastEventAt.UTC().Format(DisplayTimeLayout)
	}

	switch {
	case resp.TimeIn != "" && resp.TimeOut != "":
		resp.TimeSpan = resp.TimeIn + " to " + resp.TimeOut
	default:
		resp.TimeSpan = strings.TrimSpace(resp.TimeIn + resp.TimeOut)
	}

	return resp
}

type SummaryResponse struct {
	LastAction     string                 `json:"lastAction"`
	DailySummaries []DailySummaryResponse `json:"dailySummaries"`
}

type RecentEventResponse struct {
	ID         string    `json:"id"`
	EmployeeNo string    `json:"employeeNo"`
	FullName   string    `json:"fullName"`
	Type       EventType `json:"type"`
	Time       time.Time `json:"time"`
}
