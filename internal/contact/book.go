package contact

import (
	"fmt"
	"sort"
	"time"
)

// DefaultWindow is the number of days after today that count as upcoming.
const DefaultWindow = 7

// LeapDayPolicy decides where a Feb 29 birthday lands in a non-leap year.
type LeapDayPolicy string

const (
	LeapDayMarch1 LeapDayPolicy = "march1"
	LeapDayFeb28  LeapDayPolicy = "feb28"
)

// ParseLeapDayPolicy validates a policy name.
func ParseLeapDayPolicy(s string) (LeapDayPolicy, error) {
	switch p := LeapDayPolicy(s); p {
	case LeapDayMarch1, LeapDayFeb28:
		return p, nil
	default:
		return "", fmt.Errorf("contact: unknown leap day policy %q (want %q or %q)", s, LeapDayMarch1, LeapDayFeb28)
	}
}

// AddressBook maps contact names to records. It remembers insertion
// order so listings are stable. Not safe for concurrent use.
type AddressBook struct {
	records map[string]*Record
	order   []string
	window  int
	leapDay LeapDayPolicy
}

// Option configures an AddressBook.
type Option func(*AddressBook)

// WithWindow sets how many days past today count as upcoming.
// Negative values are ignored.
func WithWindow(days int) Option {
	return func(b *AddressBook) {
		if days >= 0 {
			b.window = days
		}
	}
}

// WithLeapDayPolicy sets the Feb 29 projection policy.
func WithLeapDayPolicy(p LeapDayPolicy) Option {
	return func(b *AddressBook) {
		if p != "" {
			b.leapDay = p
		}
	}
}

// NewAddressBook creates an empty book.
func NewAddressBook(opts ...Option) *AddressBook {
	b := &AddressBook{
		records: make(map[string]*Record),
		window:  DefaultWindow,
		leapDay: LeapDayMarch1,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// AddRecord inserts r, replacing any record with the same name.
// A replaced record keeps its original listing position.
func (b *AddressBook) AddRecord(r *Record) {
	key := r.Name()
	if _, ok := b.records[key]; !ok {
		b.order = append(b.order, key)
	}
	b.records[key] = r
}

// Find returns the record for an exact name match.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.records) }

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key])
	}
	return out
}

// Window returns the configured upcoming-birthday window in days.
func (b *AddressBook) Window() int { return b.window }

// UpcomingBirthdays projects each birthday onto today's year and buckets
// contact names by day offset when the projection falls within
// [today, today+window]. Time of day is ignored. Names inside a bucket
// follow insertion order. Birthdays already past this year are not
// wrapped into next year.
func (b *AddressBook) UpcomingBirthdays(today time.Time) map[int][]string {
	start := dateOnly(today)
	upcoming := make(map[int][]string)
	for _, key := range b.order {
		bday, ok := b.records[key].Birthday()
		if !ok {
			continue
		}
		projected := b.project(bday.Date(), start.Year())
		days := int(projected.Sub(start).Hours() / 24)
		if days < 0 || days > b.window {
			continue
		}
		upcoming[days] = append(upcoming[days], key)
	}
	return upcoming
}

// Upcoming is one day bucket of UpcomingBirthdays.
type Upcoming struct {
	Days  int
	Names []string
}

// SortedUpcoming returns UpcomingBirthdays ordered by ascending offset.
func (b *AddressBook) SortedUpcoming(today time.Time) []Upcoming {
	buckets := b.UpcomingBirthdays(today)
	out := make([]Upcoming, 0, len(buckets))
	for days, names := range buckets {
		out = append(out, Upcoming{Days: days, Names: names})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Days < out[j].Days })
	return out
}

// project moves a birthday into year, applying the leap day policy.
func (b *AddressBook) project(bday time.Time, year int) time.Time {
	month, day := bday.Month(), bday.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		if b.leapDay == LeapDayFeb28 {
			day = 28
		}
		// time.Date normalises Feb 29 to Mar 1 in non-leap years.
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// dateOnly strips the clock and zone, keeping the local calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
