package attendance

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/mbliznikova/check-in-backend/models"
)

// memStore is an in-memory Store for exercising the reconcilers without a
// database.
type memStore struct {
	nextID     uint
	rows       map[uint]memRow
	failCreate error
}

type memRow struct {
	studentID    uint
	occurrenceID uint
	date         string
	showedUp     bool
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, rows: map[uint]memRow{}}
}

func (m *memStore) seed(studentID, occurrenceID uint, date string, showedUp bool) uint {
	id := m.nextID
	m.nextID++
	m.rows[id] = memRow{studentID: studentID, occurrenceID: occurrenceID, date: date, showedUp: showedUp}
	return id
}

func (m *memStore) CheckedIn(studentID uint, date string) (map[uint]uint, error) {
	out := map[uint]uint{}
	for id, row := range m.rows {
		if row.studentID == studentID && row.date == date {
			out[row.occurrenceID] = id
		}
	}
	return out, nil
}

func (m *memStore) CreateCheckIn(studentID, occurrenceID uint, date string) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	m.seed(studentID, occurrenceID, date, true)
	return nil
}

func (m *memStore) DeleteByIDs(ids []uint) error {
	for _, id := range ids {
		delete(m.rows, id)
	}
	return nil
}

func (m *memStore) ForDate(date string) ([]Row, error) {
	var out []Row
	for id, row := range m.rows {
		if row.date == date {
			out = append(out, Row{ID: id, StudentID: row.studentID, OccurrenceID: row.occurrenceID, ShowedUp: row.showedUp})
		}
	}
	return out, nil
}

func (m *memStore) ToggleShowedUp(ids []uint) error {
	for _, id := range ids {
		row, ok := m.rows[id]
		if !ok {
			continue
		}
		row.showedUp = !row.showedUp
		m.rows[id] = row
	}
	return nil
}

// occurrences returns the sorted occurrence ids stored for a student/date.
func (m *memStore) occurrences(studentID uint, date string) []uint {
	var out []uint
	for _, row := range m.rows {
		if row.studentID == studentID && row.date == date {
			out = append(out, row.occurrenceID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

const testDate = "2025-05-13"

func TestReconcileCheckIn(t *testing.T) {
	tests := []struct {
		name        string
		current     []uint
		desired     []uint
		wantAdded   []uint
		wantRemoved []uint
		wantFinal   []uint
	}{
		{
			name:      "first check-in",
			current:   nil,
			desired:   []uint{1},
			wantAdded: []uint{1},
			wantFinal: []uint{1},
		},
		{
			name:      "check-in multiple",
			current:   nil,
			desired:   []uint{1, 2},
			wantAdded: []uint{1, 2},
			wantFinal: []uint{1, 2},
		},
		{
			name:      "add to existing",
			current:   []uint{1},
			desired:   []uint{1, 2},
			wantAdded: []uint{2},
			wantFinal: []uint{1, 2},
		},
		{
			name:        "full checkout",
			current:     []uint{1, 2},
			desired:     nil,
			wantRemoved: []uint{1, 2},
			wantFinal:   nil,
		},
		{
			name:        "swap one class for another",
			current:     []uint{1},
			desired:     []uint{2},
			wantAdded:   []uint{2},
			wantRemoved: []uint{1},
			wantFinal:   []uint{2},
		},
		{
			name:      "identical set is a no-op",
			current:   []uint{1, 2},
			desired:   []uint{2, 1},
			wantFinal: []uint{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newMemStore()
			for _, occ := range tt.current {
				st.seed(7, occ, testDate, true)
			}

			res, err := ReconcileCheckIn(st, 7, testDate, tt.desired)
			if err != nil {
				t.Fatalf("ReconcileCheckIn() error = %v", err)
			}
			if !equalIDs(res.Added, tt.wantAdded) {
				t.Errorf("Added = %v, want %v", res.Added, tt.wantAdded)
			}
			if !equalIDs(res.Removed, tt.wantRemoved) {
				t.Errorf("Removed = %v, want %v", res.Removed, tt.wantRemoved)
			}
			if got := st.occurrences(7, testDate); !equalIDs(got, tt.wantFinal) {
				t.Errorf("final store state = %v, want %v", got, tt.wantFinal)
			}
		})
	}
}

func TestReconcileCheckInIdempotent(t *testing.T) {
	st := newMemStore()
	st.seed(7, 1, testDate, true)

	desired := []uint{1, 2, 3}
	first, err := ReconcileCheckIn(st, 7, testDate, desired)
	if err != nil {
		t.Fatalf("first call error = %v", err)
	}
	if len(first.Added) != 2 {
		t.Fatalf("first call Added = %v, want 2 ids", first.Added)
	}

	second, err := ReconcileCheckIn(st, 7, testDate, desired)
	if err != nil {
		t.Fatalf("second call error = %v", err)
	}
	if len(second.Added) != 0 || len(second.Removed) != 0 {
		t.Errorf("second call = %+v, want empty add/remove lists", second)
	}
	if got := st.occurrences(7, testDate); !equalIDs(got, desired) {
		t.Errorf("final store state = %v, want %v", got, desired)
	}
}

func TestReconcileCheckInValidation(t *testing.T) {
	st := newMemStore()

	var validation *models.ValidationError
	if _, err := ReconcileCheckIn(st, 0, testDate, []uint{1}); !errors.As(err, &validation) {
		t.Errorf("missing student: error = %v, want ValidationError", err)
	}
	if _, err := ReconcileCheckIn(st, 7, "", []uint{1}); !errors.As(err, &validation) {
		t.Errorf("missing date: error = %v, want ValidationError", err)
	}
	if validation.Message != "Missing required fields" {
		t.Errorf("message = %q, want %q", validation.Message, "Missing required fields")
	}
}

func TestReconcileCheckInAbortsOnCreateFailure(t *testing.T) {
	st := newMemStore()
	st.failCreate = &models.NotFoundError{Resource: "class occurrence", ID: 2}

	_, err := ReconcileCheckIn(st, 7, testDate, []uint{2})
	var notFound *models.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestReconcileCheckInScopedToDate(t *testing.T) {
	st := newMemStore()
	st.seed(7, 1, "2025-05-12", true)

	res, err := ReconcileCheckIn(st, 7, testDate, nil)
	if err != nil {
		t.Fatalf("ReconcileCheckIn() error = %v", err)
	}
	if len(res.Removed) != 0 {
		t.Errorf("Removed = %v, records of another date must not be touched", res.Removed)
	}
	if got := st.occurrences(7, "2025-05-12"); !equalIDs(got, []uint{1}) {
		t.Errorf("other date state = %v, want [1]", got)
	}
}

func TestReconcileConfirmation(t *testing.T) {
	type row struct {
		student, occurrence uint
		showedUp            bool
	}
	tests := []struct {
		name    string
		seeded  []row
		desired map[uint]map[uint]bool
		want    []row
	}{
		{
			name:    "confirm everything as attended",
			seeded:  []row{{7, 1, true}, {7, 2, true}},
			desired: map[uint]map[uint]bool{7: {1: true, 2: true}},
			want:    []row{{7, 1, true}, {7, 2, true}},
		},
		{
			name:    "mark all as no-shows",
			seeded:  []row{{7, 1, true}, {7, 2, true}},
			desired: map[uint]map[uint]bool{7: {1: false, 2: false}},
			want:    []row{{7, 1, false}, {7, 2, false}},
		},
		{
			name:    "empty map for a student removes all their rows",
			seeded:  []row{{7, 1, true}, {7, 2, true}},
			desired: map[uint]map[uint]bool{7: {}},
			want:    nil,
		},
		{
			name:    "mixed confirm and no-show",
			seeded:  []row{{7, 1, true}, {7, 2, true}},
			desired: map[uint]map[uint]bool{7: {1: true, 2: false}},
			want:    []row{{7, 1, true}, {7, 2, false}},
		},
		{
			name:    "absent pair is deleted, present no-show kept",
			seeded:  []row{{7, 1, true}, {7, 2, true}},
			desired: map[uint]map[uint]bool{7: {2: false}},
			want:    []row{{7, 2, false}},
		},
		{
			name:    "student missing entirely loses all rows",
			seeded:  []row{{7, 1, true}, {8, 1, true}},
			desired: map[uint]map[uint]bool{7: {1: true}},
			want:    []row{{7, 1, true}},
		},
		{
			name:    "pairs without records are ignored, never created",
			seeded:  []row{{7, 1, true}},
			desired: map[uint]map[uint]bool{7: {1: true, 9: true}, 8: {1: false}},
			want:    []row{{7, 1, true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newMemStore()
			for _, r := range tt.seeded {
				st.seed(r.student, r.occurrence, testDate, r.showedUp)
			}

			if err := ReconcileConfirmation(st, testDate, tt.desired); err != nil {
				t.Fatalf("ReconcileConfirmation() error = %v", err)
			}

			var got []row
			for _, stored := range st.rows {
				got = append(got, row{student: stored.studentID, occurrence: stored.occurrenceID, showedUp: stored.showedUp})
			}
			sortRows := func(rs []row) {
				sort.Slice(rs, func(i, j int) bool {
					if rs[i].student != rs[j].student {
						return rs[i].student < rs[j].student
					}
					return rs[i].occurrence < rs[j].occurrence
				})
			}
			sortRows(got)
			sortRows(tt.want)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("final rows = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReconcileConfirmationLeavesOtherDatesAlone(t *testing.T) {
	st := newMemStore()
	st.seed(7, 1, testDate, true)
	otherID := st.seed(7, 3, "2025-05-14", true)

	if err := ReconcileConfirmation(st, testDate, map[uint]map[uint]bool{}); err != nil {
		t.Fatalf("ReconcileConfirmation() error = %v", err)
	}
	if _, ok := st.rows[otherID]; !ok {
		t.Error("record of another date was deleted")
	}
	if got := st.occurrences(7, testDate); len(got) != 0 {
		t.Errorf("confirmed date state = %v, want empty", got)
	}
}

func TestReconcileConfirmationRequiresDate(t *testing.T) {
	var validation *models.ValidationError
	if err := ReconcileConfirmation(newMemStore(), "", nil); !errors.As(err, &validation) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func equalIDs(got, want []uint) bool {
	if len(got) != len(want) {
		return false
	}
	g := append([]uint(nil), got...)
	w := append([]uint(nil), want...)
	sort.Slice(g, func(i, j int) bool { return g[i] < g[j] })
	sort.Slice(w, func(i, j int) bool { return w[i] < w[j] })
	for i := range g {
		if g[i] != w[i] {
			return false
		}
	}
	return true
}
