// Package contact holds the in-memory contact model: validated fields,
// records, and the address book with its upcoming-birthday query.
package contact

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// BirthdayLayout is the DD.MM.YYYY layout used for parsing and display.
const BirthdayLayout = "02.01.2006"

var (
	phoneRegex    = regexp.MustCompile(`^[0-9]{10}$`)
	birthdayRegex = regexp.MustCompile(`^[0-9]{2}\.[0-9]{2}\.[0-9]{4}$`)
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrBirthdayAlreadySet = errors.New("Birthday already set")
	ErrPhoneNotFound      = errors.New("phone not found")
)

// ValidationError reports a field value that failed validation.
// Its message is user-facing and printed as-is by the command layer.
type ValidationError struct {
	Field string
	Value string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Name is a contact's identity and the address book key.
type Name struct {
	value string
}

// NewName returns a Name, rejecting empty or whitespace-only input.
func NewName(value string) (Name, error) {
	if strings.TrimSpace(value) == "" {
		return Name{}, &ValidationError{Field: "name", Value: value, Msg: "Name cannot be empty"}
	}
	return Name{value: value}, nil
}

func (n Name) String() string { return n.value }

// Phone is a ten-digit phone number.
type Phone struct {
	value string
}

// NewPhone returns a Phone if value is exactly ten decimal digits.
func NewPhone(value string) (Phone, error) {
	if err := validatePhone(value); err != nil {
		return Phone{}, err
	}
	return Phone{value: value}, nil
}

// Edit replaces the number in place. On a validation failure the
// previous value is kept.
func (p *Phone) Edit(value string) error {
	if err := validatePhone(value); err != nil {
		return err
	}
	p.value = value
	return nil
}

func (p Phone) String() string { return p.value }

func validatePhone(value string) error {
	if !phoneRegex.MatchString(value) {
		return &ValidationError{Field: "phone", Value: value, Msg: "Phone number must consist of 10 digits"}
	}
	return nil
}

// Birthday is a calendar date without time of day.
type Birthday struct {
	date time.Time
}

// NewBirthday parses a DD.MM.YYYY date. Impossible calendar dates
// such as 31.02.2020 are rejected.
func NewBirthday(value string) (Birthday, error) {
	invalid := &ValidationError{Field: "birthday", Value: value, Msg: "Invalid date format. Use DD.MM.YYYY"}
	if !birthdayRegex.MatchString(value) {
		return Birthday{}, invalid
	}
	t, err := time.Parse(BirthdayLayout, value)
	if err != nil {
		return Birthday{}, invalid
	}
	return Birthday{date: t}, nil
}

// Date returns the birthday as a UTC midnight time.
func (b Birthday) Date() time.Time { return b.date }

func (b Birthday) String() string { return b.date.Format(BirthdayLayout) }
