package validate

import (
	"strings"
	"testing"
	"time"
)

func TestSignup(t *testing.T) {
	valid := SignupCredentials{
		FullName:        "Dana Rivers",
		Email:           "dana@example.com",
		Password:        "sunnydays",
		ConfirmPassword: "sunnydays",
	}

	tests := []struct {
		name   string
		mutate func(c *SignupCredentials)
		want   bool
	}{
		{name: "valid", mutate: func(c *SignupCredentials) {}, want: true},
		{name: "empty name", mutate: func(c *SignupCredentials) { c.FullName = "" }, want: false},
		{name: "name too long", mutate: func(c *SignupCredentials) { c.FullName = strings.Repeat("a", 101) }, want: false},
		{name: "malformed email", mutate: func(c *SignupCredentials) { c.Email = "not-an-email" }, want: false},
		{name: "password too short", mutate: func(c *SignupCredentials) {
			c.Password = "short"
			c.ConfirmPassword = "short"
		}, want: false},
		{name: "password mismatch", mutate: func(c *SignupCredentials) { c.ConfirmPassword = "sunnydayz" }, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			if got := Signup(c); got != tt.want {
				t.Errorf("Signup() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	if !Login(LoginCredentials{Email: "dana@example.com", Password: "sunnydays"}) {
		t.Error("expected valid credentials to pass")
	}
	if Login(LoginCredentials{Email: "dana", Password: "sunnydays"}) {
		t.Error("expected malformed email to fail")
	}
	if Login(LoginCredentials{Email: "dana@example.com", Password: "abc"}) {
		t.Error("expected short password to fail")
	}
}

func TestPool(t *testing.T) {
	valid := PoolDetails{
		Name:        "Palm Grove Lagoon",
		Location:    "Scottsdale, AZ",
		Description: "Heated saltwater pool with a shaded deck.",
		PriceCents:  4500,
		Availability: []AvailabilityWindow{
			{StartDate: "2026-09-01T08:00:00Z", EndDate: "2026-09-30T20:00:00Z"},
		},
		Amenities: []string{"heated"},
		Photos:    []string{"https://cdn.example.com/pool.jpg"},
	}

	tests := []struct {
		name   string
		mutate func(d *PoolDetails)
		want   bool
	}{
		{name: "valid", mutate: func(d *PoolDetails) {}, want: true},
		{name: "empty name", mutate: func(d *PoolDetails) { d.Name = "" }, want: false},
		{name: "location too long", mutate: func(d *PoolDetails) { d.Location = strings.Repeat("x", 201) }, want: false},
		{name: "description too long", mutate: func(d *PoolDetails) { d.Description = strings.Repeat("x", 1001) }, want: false},
		{name: "zero price", mutate: func(d *PoolDetails) { d.PriceCents = 0 }, want: false},
		{name: "negative price", mutate: func(d *PoolDetails) { d.PriceCents = -100 }, want: false},
		{name: "no availability", mutate: func(d *PoolDetails) { d.Availability = nil }, want: false},
		{name: "malformed window date", mutate: func(d *PoolDetails) {
			d.Availability = []AvailabilityWindow{{StartDate: "yesterday", EndDate: "2026-09-30T20:00:00Z"}}
		}, want: false},
		{name: "no amenities", mutate: func(d *PoolDetails) { d.Amenities = nil }, want: false},
		{name: "no photos", mutate: func(d *PoolDetails) { d.Photos = nil }, want: false},
		{name: "photo not a url", mutate: func(d *PoolDetails) { d.Photos = []string{"pool.jpg"} }, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			if got := Pool(d); got != tt.want {
				t.Errorf("Pool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBooking(t *testing.T) {
	tests := []struct {
		name string
		d    BookingDetails
		want bool
	}{
		{name: "valid", d: BookingDetails{StartDate: "2026-09-02", EndDate: "2026-09-03", Guests: 4}, want: true},
		{name: "zero guests", d: BookingDetails{StartDate: "2026-09-02", EndDate: "2026-09-03", Guests: 0}, want: false},
		{name: "negative guests", d: BookingDetails{StartDate: "2026-09-02", EndDate: "2026-09-03", Guests: -1}, want: false},
		{name: "bad start", d: BookingDetails{StartDate: "soon", EndDate: "2026-09-03", Guests: 2}, want: false},
		{name: "bad end", d: BookingDetails{StartDate: "2026-09-02", EndDate: "later", Guests: 2}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Booking(tt.d); got != tt.want {
				t.Errorf("Booking() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseISODate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "rfc3339", input: "2026-09-01T08:00:00Z"},
		{name: "rfc3339 with offset", input: "2026-09-01T08:00:00+03:00"},
		{name: "datetime without zone", input: "2026-09-01T08:00:00"},
		{name: "bare date", input: "2026-09-01"},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISODate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseISODate(%q): %v", tt.input, err)
			}
			if got.Location() != time.UTC {
				t.Errorf("expected UTC, got %v", got.Location())
			}
		})
	}
}

func TestProfile(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name string
		u    ProfileUpdate
		want bool
	}{
		{name: "empty update", u: ProfileUpdate{}, want: true},
		{name: "valid bio", u: ProfileUpdate{Bio: str("Backyard pool host since 2020.")}, want: true},
		{name: "bio too long", u: ProfileUpdate{Bio: str(strings.Repeat("x", 501))}, want: false},
		{name: "empty bio allowed", u: ProfileUpdate{Bio: str("")}, want: true},
		{name: "bad email", u: ProfileUpdate{Email: str("nope")}, want: false},
		{name: "bad avatar", u: ProfileUpdate{Avatar: str("not a url")}, want: false},
		{name: "clearing avatar allowed", u: ProfileUpdate{Avatar: str("")}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Profile(tt.u); got != tt.want {
				t.Errorf("Profile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchAndSortFilter(t *testing.T) {
	if !Search(SearchCriteria{Location: "Austin", StartDate: "2026-09-02", EndDate: "2026-09-03"}) {
		t.Error("expected valid criteria to pass")
	}
	if Search(SearchCriteria{Location: "", StartDate: "2026-09-02", EndDate: "2026-09-03"}) {
		t.Error("expected missing location to fail")
	}
	if Search(SearchCriteria{Location: "Austin", StartDate: "bad", EndDate: "2026-09-03"}) {
		t.Error("expected bad date to fail")
	}

	if !SortFilter(SortFilterCriteria{SortBy: "price", Order: "asc"}) {
		t.Error("expected valid sort criteria to pass")
	}
	if !SortFilter(SortFilterCriteria{}) {
		t.Error("expected empty sort criteria to pass")
	}
	if SortFilter(SortFilterCriteria{SortBy: "height"}) {
		t.Error("expected unknown sort field to fail")
	}
	if SortFilter(SortFilterCriteria{Order: "sideways"}) {
		t.Error("expected unknown order to fail")
	}
}

func TestRating(t *testing.T) {
	for rating, want := range map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, -1: false} {
		if got := Rating(rating); got != want {
			t.Errorf("Rating(%d) = %v, want %v", rating, got, want)
		}
	}
}
