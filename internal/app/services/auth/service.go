package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"poolbnb/internal/app/validate"
	domainauth "poolbnb/internal/domain/auth"
	domainuser "poolbnb/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidInput       = errors.New("auth: invalid input")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenGenerator interface {
	NewToken() (string, error)
}

type Service struct {
	Users      domainuser.Repository
	Sessions   domainauth.SessionStore
	Passwords  PasswordHasher
	Tokens     TokenGenerator
	SessionTTL time.Duration
	Logger     *slog.Logger
}

type SignupParams struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  *domainuser.User
	Token string
}

func (s *Service) Signup(ctx context.Context, params SignupParams) (*AuthResult, error) {
	ok := validate.Signup(validate.SignupCredentials{
		FullName:        params.FullName,
		Email:           params.Email,
		Password:        params.Password,
		ConfirmPassword: params.ConfirmPassword,
	})
	if !ok {
		return nil, ErrInvalidInput
	}
	hash, err := s.Passwords.Hash(params.Password)
	if err != nil {
		return nil, err
	}
	u, err := domainuser.New(domainuser.CreateParams{
		ID:           domainuser.ID(uuid.NewString()),
		FullName:     params.FullName,
		Email:        params.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	token, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user signed up", "user_id", u.ID)
	}
	return &AuthResult{User: u, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	if !validate.Login(validate.LoginCredentials{Email: params.Email, Password: params.Password}) {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Users.ByEmail(ctx, domainuser.NormalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.Passwords.Compare(u.PasswordHash, params.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user authenticated", "user_id", u.ID)
	}
	return &AuthResult{User: u, Token: token}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, domainauth.Token(token))
}

// ResolveToken exchanges a bearer token for the authenticated user.
func (s *Service) ResolveToken(ctx context.Context, token string) (*domainuser.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domainauth.ErrTokenRequired
	}
	session, err := s.Sessions.Get(ctx, domainauth.Token(token))
	if err != nil {
		return nil, err
	}
	u, err := s.Users.ByID(ctx, session.UserID)
	if err != nil {
		_ = s.Sessions.Delete(ctx, session.Token)
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, domainauth.ErrSessionNotFound
		}
		return nil, err
	}
	return u, nil
}

type ProfileUpdateParams struct {
	FullName *string
	Email    *string
	Bio      *string
	Avatar   *string
}

func (s *Service) UpdateProfile(ctx context.Context, userID domainuser.ID, params ProfileUpdateParams) (*domainuser.User, error) {
	ok := validate.Profile(validate.ProfileUpdate{
		FullName: params.FullName,
		Email:    params.Email,
		Bio:      params.Bio,
		Avatar:   params.Avatar,
	})
	if !ok {
		return nil, ErrInvalidInput
	}
	u, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	update := domainuser.ProfileUpdate{
		FullName: params.FullName,
		Email:    params.Email,
		Bio:      params.Bio,
		Avatar:   params.Avatar,
	}
	if err := u.ApplyProfileUpdate(update, time.Now()); err != nil {
		return nil, err
	}
	if err := s.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) issueSession(ctx context.Context, u *domainuser.User) (string, error) {
	token, err := s.Tokens.NewToken()
	if err != nil {
		return "", err
	}
	session, err := domainauth.NewSession(domainauth.CreateSessionParams{
		Token:  domainauth.Token(token),
		UserID: u.ID,
		TTL:    s.sessionTTL(),
		Now:    time.Now(),
	})
	if err != nil {
		return "", err
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return 24 * time.Hour
}
