// Package validate holds the pure boundary predicates applied to every
// externally reachable operation before any side effect. Each predicate
// answers accept/reject for a whole input shape; callers reject the
// entire request on false.
package validate

import (
	"time"

	"github.com/go-playground/validator/v10"

	"poolbnb/internal/domain/booking"
	"poolbnb/internal/domain/pool"
)

var instance = validator.New()

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02T15:04:05"
)

// Length reports whether s has between min and max characters inclusive.
func Length(s string, min, max int) bool {
	return len(s) >= min && len(s) <= max
}

func Email(s string) bool {
	return instance.Var(s, "required,email") == nil
}

func URL(s string) bool {
	return instance.Var(s, "required,url") == nil
}

// ISODate accepts the ISO-8601 shapes the API takes for dates: RFC 3339,
// a date-time without zone, or a bare date.
func ISODate(s string) bool {
	_, err := ParseISODate(s)
	return err == nil
}

func ParseISODate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(layoutDateTime, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(layoutDate, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func SortOrder(s string) bool {
	return pool.ValidSortOrder(s)
}

func BookingStatus(s string) bool {
	return booking.ValidStatus(s)
}

type SignupCredentials struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

func Signup(c SignupCredentials) bool {
	if !Length(c.FullName, 1, 100) {
		return false
	}
	if !Email(c.Email) {
		return false
	}
	if !Length(c.Password, 6, 72) {
		return false
	}
	return c.Password == c.ConfirmPassword
}

type LoginCredentials struct {
	Email    string
	Password string
}

func Login(c LoginCredentials) bool {
	return Email(c.Email) && Length(c.Password, 6, 72)
}

type BookingDetails struct {
	StartDate string
	EndDate   string
	Guests    int
}

func Booking(d BookingDetails) bool {
	if !ISODate(d.StartDate) || !ISODate(d.EndDate) {
		return false
	}
	return d.Guests > 0
}

type PoolDetails struct {
	Name         string
	Location     string
	Description  string
	PriceCents   int64
	Availability []AvailabilityWindow
	Amenities    []string
	Photos       []string
}

type AvailabilityWindow struct {
	StartDate string
	EndDate   string
}

func Pool(d PoolDetails) bool {
	if !Length(d.Name, 1, 100) {
		return false
	}
	if !Length(d.Location, 1, 200) {
		return false
	}
	if !Length(d.Description, 1, 1000) {
		return false
	}
	if d.PriceCents <= 0 {
		return false
	}
	if len(d.Availability) == 0 {
		return false
	}
	for _, window := range d.Availability {
		if !ISODate(window.StartDate) || !ISODate(window.EndDate) {
			return false
		}
	}
	if len(d.Amenities) == 0 {
		return false
	}
	if len(d.Photos) == 0 {
		return false
	}
	for _, photo := range d.Photos {
		if !URL(photo) {
			return false
		}
	}
	return true
}

type ProfileUpdate struct {
	FullName *string
	Email    *string
	Bio      *string
	Avatar   *string
}

func Profile(u ProfileUpdate) bool {
	if u.FullName != nil && !Length(*u.FullName, 1, 100) {
		return false
	}
	if u.Email != nil && !Email(*u.Email) {
		return false
	}
	if u.Bio != nil && !Length(*u.Bio, 0, 500) {
		return false
	}
	if u.Avatar != nil && *u.Avatar != "" && !URL(*u.Avatar) {
		return false
	}
	return true
}

type SearchCriteria struct {
	Location  string
	StartDate string
	EndDate   string
}

func Search(c SearchCriteria) bool {
	if !Length(c.Location, 1, 100) {
		return false
	}
	if !ISODate(c.StartDate) || !ISODate(c.EndDate) {
		return false
	}
	return true
}

type SortFilterCriteria struct {
	SortBy string
	Order  string
}

func SortFilter(c SortFilterCriteria) bool {
	if c.SortBy != "" && !pool.ValidSortField(c.SortBy) {
		return false
	}
	if c.Order != "" && !SortOrder(c.Order) {
		return false
	}
	return true
}

func Rating(rating int) bool {
	return rating >= 1 && rating <= 5
}
