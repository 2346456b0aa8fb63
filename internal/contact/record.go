package contact

import (
	"fmt"
	"strings"
)

// NotSet is shown in place of a missing birthday.
const NotSet = "Not set"

// Record is one contact: a name, an ordered list of phones (duplicates
// allowed), and at most one birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates an empty record for name.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the record's key.
func (r *Record) Name() string { return r.name.String() }

// Phones returns a copy of the record's phones in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// AddPhone validates value and appends it.
func (r *Record) AddPhone(value string) error {
	p, err := NewPhone(value)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops every phone equal to value. Absent values are a no-op.
func (r *Record) RemovePhone(value string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.value != value {
			kept = append(kept, p)
		}
	}
	r.phones = kept
}

// EditPhone changes the first phone equal to old into value.
func (r *Record) EditPhone(old, value string) error {
	for i := range r.phones {
		if r.phones[i].value == old {
			return r.phones[i].Edit(value)
		}
	}
	return fmt.Errorf("%w: %s", ErrPhoneNotFound, old)
}

// AddBirthday sets the birthday once. A second call fails with
// ErrBirthdayAlreadySet and leaves the first value in place.
func (r *Record) AddBirthday(value string) error {
	if r.birthday != nil {
		return ErrBirthdayAlreadySet
	}
	b, err := NewBirthday(value)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// ShowBirthday formats the birthday as DD.MM.YYYY, or NotSet.
func (r *Record) ShowBirthday() string {
	if r.birthday == nil {
		return NotSet
	}
	return r.birthday.String()
}

// PhoneList joins the phones with ", ".
func (r *Record) PhoneList() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.value
	}
	return strings.Join(values, ", ")
}

func (r *Record) String() string {
	return fmt.Sprintf("Name: %s, Phones: %s, Birthday: %s", r.name, r.PhoneList(), r.ShowBirthday())
}
