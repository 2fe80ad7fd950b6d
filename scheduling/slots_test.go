package scheduling

import (
	"reflect"
	"testing"
)

func mustParse(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q) error = %v", s, err)
	}
	return tod
}

func busyAt(t *testing.T, start string, durationMinutes int) Interval {
	t.Helper()
	return Busy(mustParse(t, start), durationMinutes)
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "08:00", want: 480},
		{in: "00:00", want: 0},
		{in: "23:59", want: 1439},
		{in: " 10:30 ", want: 630},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "12", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if got := TimeOfDay(480).String(); got != "08:00" {
		t.Errorf("String() = %q, want %q", got, "08:00")
	}
	if got := TimeOfDay(1230).String(); got != "20:30" {
		t.Errorf("String() = %q, want %q", got, "20:30")
	}
}

func TestStartTimes(t *testing.T) {
	dayStart := TimeOfDay(8 * 60)
	dayEnd := TimeOfDay(21 * 60)

	tests := []struct {
		name     string
		busy     []Interval
		duration int
		step     int
		want     []string
	}{
		{
			name:     "one morning class splits the day",
			busy:     []Interval{busyAt(t, "10:00", 60)},
			duration: 60,
			step:     30,
			want: []string{
				"08:00", "08:30", "09:00",
				"11:00", "11:30", "12:00", "12:30", "13:00", "13:30", "14:00",
				"14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
				"18:00", "18:30", "19:00", "19:30", "20:00",
			},
		},
		{
			name:     "empty day offers the whole lattice",
			busy:     nil,
			duration: 120,
			step:     60,
			want: []string{
				"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00",
				"15:00", "16:00", "17:00", "18:00", "19:00",
			},
		},
		{
			name: "gap shorter than the duration is skipped entirely",
			busy: []Interval{
				busyAt(t, "08:00", 60),
				busyAt(t, "09:30", 690), // runs to 21:00
			},
			duration: 60,
			step:     30,
			want:     nil,
		},
		{
			name: "abutting intervals leave no gap",
			busy: []Interval{
				busyAt(t, "08:00", 120),
				busyAt(t, "10:00", 660), // 10:00-21:00
			},
			duration: 30,
			step:     30,
			want:     nil,
		},
		{
			name: "overlapping intervals are merged before gap computation",
			busy: []Interval{
				busyAt(t, "09:00", 120),
				busyAt(t, "10:00", 120), // overlaps, merged to 09:00-12:00
			},
			duration: 60,
			step:     60,
			want: []string{
				"08:00",
				"12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00", "19:00", "20:00",
			},
		},
		{
			name:     "exact fit gap yields a single slot",
			busy:     []Interval{busyAt(t, "09:00", 720)}, // 09:00-21:00
			duration: 60,
			step:     30,
			want:     []string{"08:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTimes(StartTimes(tt.busy, tt.duration, tt.step, dayStart, dayEnd))
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StartTimes() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Every offered start must sit inside the day bounds and clear of every busy
// interval.
func TestStartTimesBounded(t *testing.T) {
	dayStart := TimeOfDay(8 * 60)
	dayEnd := TimeOfDay(21 * 60)
	busy := []Interval{
		busyAt(t, "09:15", 45),
		busyAt(t, "13:00", 90),
		busyAt(t, "18:40", 50),
	}
	duration := 60

	for _, start := range StartTimes(busy, duration, 30, dayStart, dayEnd) {
		end := start + TimeOfDay(duration)
		if start < dayStart || end > dayEnd {
			t.Errorf("slot %s out of day bounds", start)
		}
		for _, iv := range busy {
			if start < iv.End && iv.Start < end {
				t.Errorf("slot %s overlaps busy interval %s-%s", start, iv.Start, iv.End)
			}
		}
	}
}

func TestStartRanges(t *testing.T) {
	dayStart := TimeOfDay(8 * 60)
	dayEnd := TimeOfDay(21 * 60)

	tests := []struct {
		name     string
		busy     []Interval
		duration int
		want     [][2]string
	}{
		{
			name:     "one class splits the day into two ranges",
			busy:     []Interval{busyAt(t, "10:00", 60)},
			duration: 60,
			want:     [][2]string{{"08:00", "09:00"}, {"11:00", "20:00"}},
		},
		{
			name:     "empty day",
			busy:     nil,
			duration: 60,
			want:     [][2]string{{"08:00", "20:00"}},
		},
		{
			name:     "exact fit collapses a range to a point",
			busy:     []Interval{busyAt(t, "09:00", 720)},
			duration: 60,
			want:     [][2]string{{"08:00", "08:00"}},
		},
		{
			name: "short gap contributes nothing",
			busy: []Interval{
				busyAt(t, "08:00", 60),
				busyAt(t, "09:30", 690),
			},
			duration: 60,
			want:     nil,
		},
		{
			name:     "occurrence past nominal day end extends the day",
			busy:     []Interval{busyAt(t, "21:30", 60)},
			duration: 60,
			want:     [][2]string{{"08:00", "20:30"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRanges(StartRanges(tt.busy, tt.duration, dayStart, dayEnd))
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StartRanges() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFreeGapsClampsToDay(t *testing.T) {
	dayStart := TimeOfDay(8 * 60)
	dayEnd := TimeOfDay(21 * 60)
	busy := []Interval{
		busyAt(t, "06:00", 120), // before the day, ends exactly at start
		busyAt(t, "20:00", 120), // runs past the end
	}
	got := freeGaps(busy, dayStart, dayEnd)
	want := []Interval{{Start: dayStart, End: TimeOfDay(20 * 60)}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("freeGaps() = %v, want %v", got, want)
	}
}
