package daily

import (
	"testing"
	"time"
)

func istanbul(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	return loc
}

func TestClaimedOn(t *testing.T) {
	loc := istanbul(t)

	tests := []struct {
		name string
		last time.Time
		now  time.Time
		want bool
	}{
		{
			name: "never claimed",
			last: time.Time{},
			now:  time.Date(2025, 3, 10, 12, 0, 0, 0, loc),
			want: false,
		},
		{
			name: "claimed earlier today",
			last: time.Date(2025, 3, 10, 8, 30, 0, 0, loc),
			now:  time.Date(2025, 3, 10, 21, 0, 0, 0, loc),
			want: true,
		},
		{
			name: "claimed yesterday",
			last: time.Date(2025, 3, 9, 23, 0, 0, 0, loc),
			now:  time.Date(2025, 3, 10, 9, 0, 0, 0, loc),
			want: false,
		},
		{
			name: "shortly after midnight, under 24 hours since last claim",
			last: time.Date(2025, 3, 9, 23, 59, 0, 0, loc),
			now:  time.Date(2025, 3, 10, 0, 5, 0, 0, loc),
			want: false,
		},
		{
			name: "same instant",
			last: time.Date(2025, 3, 10, 10, 0, 0, 0, loc),
			now:  time.Date(2025, 3, 10, 10, 0, 0, 0, loc),
			want: true,
		},
		{
			name: "UTC timestamp compared in local calendar",
			// 22:30 UTC on the 9th is 01:30 on the 10th in Istanbul
			last: time.Date(2025, 3, 9, 22, 30, 0, 0, time.UTC),
			now:  time.Date(2025, 3, 10, 9, 0, 0, 0, loc),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClaimedOn(tt.last, tt.now, loc); got != tt.want {
				t.Errorf("ClaimedOn(%v, %v) = %v, want %v", tt.last, tt.now, got, tt.want)
			}
		})
	}
}

func TestStartOfDay(t *testing.T) {
	loc := istanbul(t)
	now := time.Date(2025, 3, 10, 17, 45, 12, 999, loc)

	got := startOfDay(now)
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("startOfDay(%v) = %v, want %v", now, got, want)
	}
	if got.Location() != loc {
		t.Errorf("startOfDay lost location: %v", got.Location())
	}
}
