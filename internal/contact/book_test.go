package contact

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func bookWithBirthdays(t *testing.T, opts []Option, pairs ...string) *AddressBook {
	t.Helper()
	b := NewAddressBook(opts...)
	for i := 0; i+1 < len(pairs); i += 2 {
		r := newTestRecord(t, pairs[i])
		if pairs[i+1] != "" {
			if err := r.AddBirthday(pairs[i+1]); err != nil {
				t.Fatalf("AddBirthday(%q) error = %v", pairs[i+1], err)
			}
		}
		b.AddRecord(r)
	}
	return b
}

func TestAddressBook_AddAndFind(t *testing.T) {
	b := NewAddressBook()
	r := newTestRecord(t, "Alice", "1234567890")
	b.AddRecord(r)

	got, ok := b.Find("Alice")
	if !ok || got != r {
		t.Fatalf("Find(Alice) = %v, %v; want the added record", got, ok)
	}
	if _, ok := b.Find("alice"); ok {
		t.Error("Find is case-sensitive; Find(alice) should miss")
	}
	if _, ok := b.Find("Bob"); ok {
		t.Error("Find(Bob) should miss")
	}
}

func TestAddressBook_AddRecord_OverwriteKeepsOrder(t *testing.T) {
	b := NewAddressBook()
	b.AddRecord(newTestRecord(t, "Alice"))
	b.AddRecord(newTestRecord(t, "Bob"))
	replacement := newTestRecord(t, "Alice", "5555555555")
	b.AddRecord(replacement)

	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	var names []string
	for _, r := range b.Records() {
		names = append(names, r.Name())
	}
	if diff := cmp.Diff([]string{"Alice", "Bob"}, names); diff != "" {
		t.Errorf("Records() order mismatch (-want +got):\n%s", diff)
	}
	if got, _ := b.Find("Alice"); got != replacement {
		t.Error("AddRecord should overwrite an existing name")
	}
}

func TestAddressBook_UpcomingBirthdays(t *testing.T) {
	today := date(2024, time.June, 1)

	tests := []struct {
		name  string
		opts  []Option
		pairs []string
		today time.Time
		want  map[int][]string
	}{
		{
			name:  "two days out",
			pairs: []string{"Alice", "03.06.1990"},
			today: today,
			want:  map[int][]string{2: {"Alice"}},
		},
		{
			name:  "eight days out is excluded",
			pairs: []string{"Alice", "09.06.1990"},
			today: today,
			want:  map[int][]string{},
		},
		{
			name:  "today and seventh day are inclusive",
			pairs: []string{"Bob", "01.06.1985", "Carol", "08.06.2001"},
			today: today,
			want:  map[int][]string{0: {"Bob"}, 7: {"Carol"}},
		},
		{
			name:  "time of day is ignored",
			pairs: []string{"Bob", "01.06.1985"},
			today: time.Date(2024, time.June, 1, 18, 30, 0, 0, time.UTC),
			want:  map[int][]string{0: {"Bob"}},
		},
		{
			name:  "past birthdays are skipped",
			pairs: []string{"Alice", "31.05.1990"},
			today: today,
			want:  map[int][]string{},
		},
		{
			name:  "no birthday is skipped",
			pairs: []string{"Alice", ""},
			today: today,
			want:  map[int][]string{},
		},
		{
			name:  "bucket keeps insertion order",
			pairs: []string{"Zed", "04.06.1990", "Amy", "04.06.1970"},
			today: today,
			want:  map[int][]string{3: {"Zed", "Amy"}},
		},
		{
			name:  "no wrap across year end",
			pairs: []string{"Alice", "02.01.1990"},
			today: date(2024, time.December, 30),
			want:  map[int][]string{},
		},
		{
			name:  "custom window",
			opts:  []Option{WithWindow(10)},
			pairs: []string{"Alice", "09.06.1990"},
			today: today,
			want:  map[int][]string{8: {"Alice"}},
		},
		{
			name:  "leap day lands on march 1 by default",
			pairs: []string{"Leo", "29.02.2000"},
			today: date(2023, time.February, 27),
			want:  map[int][]string{2: {"Leo"}},
		},
		{
			name:  "leap day lands on feb 28 by policy",
			opts:  []Option{WithLeapDayPolicy(LeapDayFeb28)},
			pairs: []string{"Leo", "29.02.2000"},
			today: date(2023, time.February, 27),
			want:  map[int][]string{1: {"Leo"}},
		},
		{
			name:  "leap day in leap year stays",
			pairs: []string{"Leo", "29.02.2000"},
			today: date(2024, time.February, 27),
			want:  map[int][]string{2: {"Leo"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bookWithBirthdays(t, tt.opts, tt.pairs...)

			got := b.UpcomingBirthdays(tt.today)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("UpcomingBirthdays() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddressBook_SortedUpcoming(t *testing.T) {
	b := bookWithBirthdays(t, nil,
		"Alice", "04.06.1990",
		"Bob", "01.06.1980",
		"Carol", "06.06.1975",
	)

	got := b.SortedUpcoming(date(2024, time.June, 1))

	want := []Upcoming{
		{Days: 0, Names: []string{"Bob"}},
		{Days: 3, Names: []string{"Alice"}},
		{Days: 5, Names: []string{"Carol"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortedUpcoming() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLeapDayPolicy(t *testing.T) {
	for _, s := range []string{"march1", "feb28"} {
		if _, err := ParseLeapDayPolicy(s); err != nil {
			t.Errorf("ParseLeapDayPolicy(%q) error = %v", s, err)
		}
	}
	if _, err := ParseLeapDayPolicy("skip"); err == nil {
		t.Error("ParseLeapDayPolicy(skip) should fail")
	}
}

func TestWithWindow_IgnoresNegative(t *testing.T) {
	b := NewAddressBook(WithWindow(-3))
	if b.Window() != DefaultWindow {
		t.Errorf("Window() = %d, want %d", b.Window(), DefaultWindow)
	}
}
