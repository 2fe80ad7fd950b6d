package jobs

import (
	"testing"
	"time"
)

func TestNextMonday(t *testing.T) {
	tests := []struct {
		name string
		from string
		want string
	}{
		{name: "monday maps to itself", from: "2025-05-12", want: "2025-05-12"},
		{name: "tuesday", from: "2025-05-13", want: "2025-05-19"},
		{name: "wednesday", from: "2025-05-14", want: "2025-05-19"},
		{name: "saturday", from: "2025-05-17", want: "2025-05-19"},
		{name: "sunday rolls to the next day", from: "2025-05-18", want: "2025-05-19"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, err := time.Parse("2006-01-02", tt.from)
			if err != nil {
				t.Fatalf("bad test date: %v", err)
			}
			if got := NextMonday(from).Format("2006-01-02"); got != tt.want {
				t.Errorf("NextMonday(%s) = %s, want %s", tt.from, got, tt.want)
			}
		})
	}
}
