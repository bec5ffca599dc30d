package stay

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var nonDigits = regexp.MustCompile(`\D`)

// ValidationErrors maps field names to user-facing messages. The intake form
// blocks advance while this is non-empty.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("invalid stay request: ")
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f + ": " + v[f])
	}
	return b.String()
}

// Stay is the validated guest/date/occupancy input of the reservation form.
// Immutable once constructed.
type Stay struct {
	guestName      string
	email          string
	phone          string
	checkIn        time.Time
	checkOut       time.Time
	adults         int
	children       int
	specialRequest string
}

type Input struct {
	GuestName      string
	Email          string
	Phone          string
	CheckIn        time.Time
	CheckOut       time.Time
	Adults         int
	Children       int
	SpecialRequest string
}

func New(in Input) (*Stay, error) {
	errs := ValidationErrors{}

	name := strings.TrimSpace(in.GuestName)
	if name == "" {
		errs["name"] = "Name is required"
	}

	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		errs["phone"] = "Phone number is required"
	} else if len(nonDigits.ReplaceAllString(phone, "")) != 11 {
		errs["phone"] = "Invalid phone number"
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailRegex.MatchString(email) {
		errs["email"] = "Invalid email address"
	}

	if in.CheckIn.IsZero() {
		errs["checkIn"] = "Check-in date is required"
	}
	if in.CheckOut.IsZero() {
		errs["checkOut"] = "Check-out date is required"
	} else if !in.CheckIn.IsZero() && !in.CheckOut.After(in.CheckIn) {
		errs["checkOut"] = "Check-out date must be after check-in date"
	}

	if in.Adults < 1 {
		errs["adults"] = "At least one adult is required"
	}
	if in.Children < 0 {
		errs["children"] = "Children count cannot be negative"
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Stay{
		guestName:      name,
		email:          email,
		phone:          phone,
		checkIn:        in.CheckIn,
		checkOut:       in.CheckOut,
		adults:         in.Adults,
		children:       in.Children,
		specialRequest: strings.TrimSpace(in.SpecialRequest),
	}, nil
}

// Reconstruct rebuilds a Stay from a persisted snapshot without re-validating.
func Reconstruct(in Input) *Stay {
	return &Stay{
		guestName:      in.GuestName,
		email:          in.Email,
		phone:          in.Phone,
		checkIn:        in.CheckIn,
		checkOut:       in.CheckOut,
		adults:         in.Adults,
		children:       in.Children,
		specialRequest: in.SpecialRequest,
	}
}

// Nights is the stay length in nights, ceil of the hour difference over 24h.
// Falls back to 1 when either date is absent; never less than 1.
func (s *Stay) Nights() int {
	return NightsBetween(s.checkIn, s.checkOut)
}

func NightsBetween(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 1
	}
	hours := checkOut.Sub(checkIn).Hours()
	nights := int(hours / 24)
	if hours > float64(nights)*24 {
		nights++
	}
	if nights < 1 {
		nights = 1
	}
	return nights
}

func (s *Stay) GuestName() string      { return s.guestName }
func (s *Stay) Email() string          { return s.email }
func (s *Stay) Phone() string          { return s.phone }
func (s *Stay) CheckIn() time.Time     { return s.checkIn }
func (s *Stay) CheckOut() time.Time    { return s.checkOut }
func (s *Stay) Adults() int            { return s.adults }
func (s *Stay) Children() int          { return s.children }
func (s *Stay) SpecialRequest() string { return s.specialRequest }

// Snapshot returns the exported form persisted with a booking flow.
func (s *Stay) Snapshot() Input {
	return Input{
		GuestName:      s.guestName,
		Email:          s.email,
		Phone:          s.phone,
		CheckIn:        s.checkIn,
		CheckOut:       s.checkOut,
		Adults:         s.adults,
		Children:       s.children,
		SpecialRequest: s.specialRequest,
	}
}
