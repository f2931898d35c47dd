package user

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"
)

var (
	ErrIDRequired          = errors.New("user: id is required")
	ErrEmailRequired       = errors.New("user: email is required")
	ErrNameRequired        = errors.New("user: full name is required")
	ErrNameTooLong         = errors.New("user: full name must be at most 100 characters")
	ErrPasswordHashMissing = errors.New("user: password hash is required")
	ErrEmailAlreadyUsed    = errors.New("user: email already used")
	ErrBioTooLong          = errors.New("user: bio must be at most 500 characters")
	ErrInvalidAvatarURL    = errors.New("user: avatar must be a valid URL")
	ErrNotFound            = errors.New("user: not found")
)

type ID string

// Profile holds the optional presentation fields of an account.
type Profile struct {
	Bio    string
	Avatar string
}

type User struct {
	ID           ID
	FullName     string
	Email        string
	PasswordHash string
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, u *User) error
}

type CreateParams struct {
	ID           ID
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func New(params CreateParams) (*User, error) {
	id := strings.TrimSpace(string(params.ID))
	if id == "" {
		return nil, ErrIDRequired
	}
	email := NormalizeEmail(params.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	name := strings.TrimSpace(params.FullName)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > 100 {
		return nil, ErrNameTooLong
	}
	if strings.TrimSpace(params.PasswordHash) == "" {
		return nil, ErrPasswordHashMissing
	}
	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &User{
		ID:           ID(id),
		FullName:     name,
		Email:        email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

type ProfileUpdate struct {
	FullName *string
	Email    *string
	Bio      *string
	Avatar   *string
}

// ApplyProfileUpdate mutates only the provided fields; a nil pointer
// leaves the current value untouched.
func (u *User) ApplyProfileUpdate(update ProfileUpdate, now time.Time) error {
	if update.FullName != nil {
		name := strings.TrimSpace(*update.FullName)
		if name == "" {
			return ErrNameRequired
		}
		if len(name) > 100 {
			return ErrNameTooLong
		}
		u.FullName = name
	}
	if update.Email != nil {
		email := NormalizeEmail(*update.Email)
		if email == "" {
			return ErrEmailRequired
		}
		u.Email = email
	}
	if update.Bio != nil {
		bio := strings.TrimSpace(*update.Bio)
		if len(bio) > 500 {
			return ErrBioTooLong
		}
		u.Profile.Bio = bio
	}
	if update.Avatar != nil {
		avatar := strings.TrimSpace(*update.Avatar)
		if avatar != "" {
			parsed, err := url.Parse(avatar)
			if err != nil || parsed.Scheme == "" || parsed.Host == "" {
				return ErrInvalidAvatarURL
			}
		}
		u.Profile.Avatar = avatar
	}
	u.UpdatedAt = now.UTC()
	return nil
}

func (u *User) SetPasswordHash(hash string, now time.Time) error {
	if strings.TrimSpace(hash) == "" {
		return ErrPasswordHashMissing
	}
	u.PasswordHash = hash
	u.UpdatedAt = now.UTC()
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
