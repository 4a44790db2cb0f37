package timesheet

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// RawLogRow is one untyped row from an import source (JSON body or spreadsheet).
type RawLogRow struct {
	Date string `json:"Date"`
	Type string `json:"Type"`
	Time string `json:"Time"`

	// Row is the 1-based line in the source sheet, zero for JSON input.
	Row int `json:"-"`
}

// ImportRow is a validated log row.
type ImportRow struct {
	Type      EventType
	Date      time.Time
	Timestamp time.Time
}

// DayBatch is every imported event of one day, in ledger order.
type DayBatch struct {
	Date   time.Time
	Events []ClockEvent
}

var dateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	"1/2/2006",
	"1-2-06",
	"1/2/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Mon, Jan 2, 2006",
	time.RFC3339,
}

var timeLayouts = []string{
	time.TimeOnly,
	"15:04",
	"3:04 PM",
	"3:04:05 PM",
	"3:04PM",
	"3:04:05PM",
}

// ParseLogDate accepts ISO dates as well as the formats spreadsheets emit.
func ParseLogDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DayStart(t), true
		}
	}
	return time.Time{}, false
}

// ParseLogTime returns the offset from midnight for a time-of-day string.
func ParseLogTime(s string) (time.Duration, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}

// ParseLogRows validates every row before any is accepted. All offending rows
// are reported together as validator.ValidationErrors.
func ParseLogRows(rows []RawLogRow) ([]ImportRow, error) {
	var errs validator.ValidationErrors
	parsed := make([]ImportRow, 0, len(rows))

	for i, raw := range rows {
		label := fmt.Sprintf("logs[%d]", i)
		if raw.Row > 0 {
			label = fmt.Sprintf("row %d", raw.Row)
		}

		eventType, ok := ParseEventType(raw.Type)
		if !ok {
			errs.Add(label+".type", fmt.Sprintf("invalid type '%s'", raw.Type))
		}

		date, dateOK := ParseLogDate(raw.Date)
		offset, timeOK := ParseLogTime(raw.Time)
		if !dateOK || !timeOK {
			errs.Add(label+".time", "invalid date or time format")
		}

		if ok && dateOK && timeOK {
			parsed = append(parsed, ImportRow{
				Type:      eventType,
				Date:      date,
				Timestamp: date.Add(offset),
			})
		}
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return parsed, nil
}

// GroupByDay splits rows into per-day batches, oldest day first, each sorted
// by timestamp.
func GroupByDay(rows []ImportRow) []DayBatch {
	byDay := make(map[time.Time][]ClockEvent)
	var days []time.Time

	for _, row := range rows {
		if _, seen := byDay[row.Date]; !seen {
			days = append(days, row.Date)
		}
		byDay[row.Date] = append(byDay[row.Date], ClockEvent{
			Type:      row.Type,
			Timestamp: row.Timestamp,
		})
	}

	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	batches := make([]DayBatch, 0, len(days))
	for _, day := range days {
		events := byDay[day]
		slices.SortStableFunc(events, func(a, b ClockEvent) int {
			return a.Timestamp.Compare(b.Timestamp)
		})
		batches = append(batches, DayBatch{Date: day, Events: events})
	}

	return batches
}

// CheckOrdering replays every batch through the ledger state machine and
// reports the first day that breaks it.
func CheckOrdering(batches []DayBatch) error {
	for _, batch := range batches {
		state := StateNone
		for _, ev := range batch.Events {
			next, err := Transition(state, ev.Type)
			if err != nil {
				return &OrderingError{Date: batch.Date, Cause: err}
			}
			state = next
		}
	}
	return nil
}
