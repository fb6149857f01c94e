package model

import "testing"

func TestParseStatusClosedSet(t *testing.T) {
	valid := []string{"pending", "confirmed", "cancelled", "completed"}
	for _, s := range valid {
		got, ok := ParseStatus(s)
		if !ok {
			t.Errorf("ParseStatus(%q) rejected a valid status", s)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q", s, got)
		}
	}

	invalid := []string{"", "Confirmed", "CANCELLED", "canceled", "done", "active"}
	for _, s := range invalid {
		if _, ok := ParseStatus(s); ok {
			t.Errorf("ParseStatus(%q) accepted a value outside the status set", s)
		}
	}
}

func TestStatusBlocking(t *testing.T) {
	cases := map[Status]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCancelled: false,
		StatusCompleted: false,
	}
	for st, want := range cases {
		if got := st.Blocking(); got != want {
			t.Errorf("%s.Blocking() = %v, want %v", st, got, want)
		}
	}
}
