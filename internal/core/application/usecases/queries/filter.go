// Package queries holds the read side of the procurement workflow. Handlers
// read the tables directly through gorm and return flat responses; they never
// load aggregates.
package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

const (
	minYear = 1
	maxYear = 9999
)

// Filter narrows a list query. Zero fields do not filter. Year and the
// From/To range can be combined; both bounds then apply.
type Filter struct {
	VendorID    int64
	EventID     int64
	SubmitterID string
	Year        int
	// From is inclusive, To is exclusive.
	From time.Time
	To   time.Time
}

// Validate reports filters that can never match.
func (f Filter) Validate() error {
	var errList []error
	if f.VendorID < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("vendorId", fmt.Errorf("%d is negative", f.VendorID)))
	}
	if f.EventID < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("eventId", fmt.Errorf("%d is negative", f.EventID)))
	}
	if f.Year != 0 && (f.Year < minYear || f.Year > maxYear) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("year", f.Year, minYear, maxYear))
	}
	if !f.From.IsZero() && !f.To.IsZero() && !f.From.Before(f.To) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("to", errors.New("must be after from")))
	}
	return errors.Join(errList...)
}

// apply adds the filter to db. dateColumn is the column Year and the range
// test against.
func (f Filter) apply(db *gorm.DB, dateColumn string) *gorm.DB {
	if f.VendorID != 0 {
		db = db.Where("vendor_id = ?", f.VendorID)
	}
	if f.EventID != 0 {
		db = db.Where("event_id = ?", f.EventID)
	}
	if s := strings.TrimSpace(f.SubmitterID); s != "" {
		db = db.Where("submitter_id = ?", s)
	}
	if f.Year != 0 {
		start := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		db = db.Where(dateColumn+" >= ? AND "+dateColumn+" < ?", start, start.AddDate(1, 0, 0))
	}
	if !f.From.IsZero() {
		db = db.Where(dateColumn+" >= ?", f.From.UTC())
	}
	if !f.To.IsZero() {
		db = db.Where(dateColumn+" < ?", f.To.UTC())
	}
	return db
}
