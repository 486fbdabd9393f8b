package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Date
		err  bool
	}{
		{in: "2024-01-01", want: New(2024, time.January, 1)},
		{in: "2024-1-1", want: New(2024, time.January, 1)},
		{in: "2024-12-31", want: New(2024, time.December, 31)},
		{in: "not-a-date", err: true},
		{in: "", err: true},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("Parse(%q) expected an error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAddNormalizes(t *testing.T) {
	d := New(2024, time.January, 31).Add(1)
	if d != New(2024, time.February, 1) {
		t.Errorf("Add(1) = %v, want 2024-02-01", d)
	}
	d = New(2024, time.March, 1).Add(-1)
	if d != New(2024, time.February, 29) { // leap year
		t.Errorf("Add(-1) = %v, want 2024-02-29", d)
	}
}

func TestYearMonth(t *testing.T) {
	if got := New(2024, time.September, 5).YearMonth(); got != "2024-09" {
		t.Errorf("YearMonth() = %q, want %q", got, "2024-09")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2024, time.June, 7)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2024-06-07"` {
		t.Errorf("MarshalJSON = %s, want %q", b, `"2024-06-07"`)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestIterate(t *testing.T) {
	var a, b History[float64]
	a.Append(New(2024, 1, 1), 1).Append(New(2024, 1, 3), 3)
	b.Append(New(2024, 1, 2), 2).Append(New(2024, 1, 3), 30)

	var got []Date
	for d := range Iterate(a, b) {
		got = append(got, d)
	}
	want := []Date{New(2024, 1, 1), New(2024, 1, 2), New(2024, 1, 3)}
	if len(got) != len(want) {
		t.Fatalf("Iterate yielded %d dates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Iterate[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
