package booking

import (
	"testing"
	"time"
)

func TestTotalCostCents(t *testing.T) {
	base := time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)
	iv := func(d time.Duration) Interval {
		return Interval{Start: base, End: base.Add(d)}
	}

	cases := []struct {
		name      string
		dur       time.Duration
		rateCents int64
		want      int64
	}{
		{"two hours at $10/h", 2 * time.Hour, 1000, 2000},
		{"one hour at $10/h", time.Hour, 1000, 1000},
		{"ninety minutes priced proportionally", 90 * time.Minute, 1000, 1500},
		{"fractional result rounds half up", 90 * time.Minute, 1, 2}, // 1.5 cents -> 2
		{"above half rounds up", 61 * time.Minute, 999, 1016},     // 1015.65 -> 1016
		{"below half rounds down", 61 * time.Minute, 10, 10},      // 10.17 -> 10
		{"zero rate", 3 * time.Hour, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalCostCents(iv(tc.dur), tc.rateCents); got != tc.want {
			t.Errorf("%s: TotalCostCents = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestTotalCostCentsIsDeterministic(t *testing.T) {
	base := time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)
	iv := Interval{Start: base, End: base.Add(2*time.Hour + 30*time.Minute)}
	first := TotalCostCents(iv, 1250)
	for i := 0; i < 1000; i++ {
		if got := TotalCostCents(iv, 1250); got != first {
			t.Fatalf("iteration %d: got %d, want %d", i, got, first)
		}
	}
	if first != 3125 { // 2.5h * $12.50
		t.Fatalf("expected 3125 cents, got %d", first)
	}
}
