// Package attendance reconciles incoming check-in and confirmation payloads
// against the persisted attendance rows. The incoming data is always the
// authoritative state for its scope (one student's day for check-in, the
// whole day for confirmation) and the reconcilers compute the minimal set
// of writes to make the store match it.
package attendance

import (
	"sort"

	"github.com/mbliznikova/check-in-backend/models"
)

// Row is the slice of an attendance record the reconcilers need: effective
// ids resolved through the safe accessors by the store.
type Row struct {
	ID           uint
	StudentID    uint
	OccurrenceID uint
	ShowedUp     bool
}

// Store is the persistence port. Implementations are expected to scope every
// call to one school and, in production, to run inside one transaction per
// reconciliation.
type Store interface {
	// CheckedIn returns occurrence id → attendance row id for the student's
	// existing records on the date.
	CheckedIn(studentID uint, date string) (map[uint]uint, error)
	// CreateCheckIn inserts a new record with is_showed_up = true.
	CreateCheckIn(studentID, occurrenceID uint, date string) error
	DeleteByIDs(ids []uint) error
	// ForDate returns every record for the date, across all students.
	ForDate(date string) ([]Row, error)
	// ToggleShowedUp flips is_showed_up on the given rows in one statement.
	ToggleShowedUp(ids []uint) error
}

// CheckInResult reports the occurrence ids actually applied.
type CheckInResult struct {
	Added   []uint
	Removed []uint
}

// ReconcileCheckIn makes the store's records for (studentID, date) exactly
// match desired. Checking in assumes presence, so created rows default to
// showed-up. An empty desired set is a full checkout. Re-applying the same
// set is a no-op.
func ReconcileCheckIn(st Store, studentID uint, date string, desired []uint) (CheckInResult, error) {
	var res CheckInResult
	if studentID == 0 || date == "" {
		return res, models.NewValidationError("Missing required fields")
	}

	current, err := st.CheckedIn(studentID, date)
	if err != nil {
		return res, err
	}

	desiredSet := make(map[uint]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	var staleRowIDs []uint
	for occID, rowID := range current {
		if _, ok := desiredSet[occID]; !ok {
			res.Removed = append(res.Removed, occID)
			staleRowIDs = append(staleRowIDs, rowID)
		}
	}
	for occID := range desiredSet {
		if _, ok := current[occID]; !ok {
			res.Added = append(res.Added, occID)
		}
	}
	sort.Slice(res.Added, func(i, j int) bool { return res.Added[i] < res.Added[j] })
	sort.Slice(res.Removed, func(i, j int) bool { return res.Removed[i] < res.Removed[j] })

	for _, occID := range res.Added {
		if err := st.CreateCheckIn(studentID, occID, date); err != nil {
			return CheckInResult{}, err
		}
	}
	if len(staleRowIDs) > 0 {
		if err := st.DeleteByIDs(staleRowIDs); err != nil {
			return CheckInResult{}, err
		}
	}
	return res, nil
}

// ReconcileConfirmation makes the whole attendance table for date match
// desired (student id → occurrence id → showed up). Rows whose key is absent
// from desired are deleted; rows whose flag differs are flipped; desired
// pairs with no existing row are ignored, since confirmation corrects
// check-ins and never creates attendance facts. Applies one batch delete and
// one batch flip.
func ReconcileConfirmation(st Store, date string, desired map[uint]map[uint]bool) error {
	if date == "" {
		return models.NewValidationError("Missing required fields")
	}

	rows, err := st.ForDate(date)
	if err != nil {
		return err
	}

	var toDelete, toFlip []uint
	for _, row := range rows {
		byOccurrence, ok := desired[row.StudentID]
		if !ok {
			toDelete = append(toDelete, row.ID)
			continue
		}
		want, ok := byOccurrence[row.OccurrenceID]
		if !ok {
			toDelete = append(toDelete, row.ID)
			continue
		}
		if want != row.ShowedUp {
			toFlip = append(toFlip, row.ID)
		}
	}

	if len(toDelete) > 0 {
		if err := st.DeleteByIDs(toDelete); err != nil {
			return err
		}
	}
	if len(toFlip) > 0 {
		if err := st.ToggleShowedUp(toFlip); err != nil {
			return err
		}
	}
	return nil
}
