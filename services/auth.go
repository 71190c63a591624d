package services

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/saqibam92/BlashBerry-nextjs/auth"
	"github.com/saqibam92/BlashBerry-nextjs/models"
)

type AuthService struct {
	store    models.Store
	tokens   *auth.Tokens
	google   auth.GoogleVerifier
	validate *validator.Validate
}

type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name, email = strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email))
	var fields []models.FieldError
	if len([]rune(name)) < 2 {
		fields = append(fields, models.FieldError{Field: "name", Message: "Name is required"})
	}
	if s.validate.Var(email, "required,email") != nil {
		fields = append(fields, models.FieldError{Field: "email", Message: "Valid email is required"})
	}
	if len(password) < auth.MinPasswordLength {
		fields = append(fields, models.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if len(fields) > 0 {
		return nil, models.NewValidationError("Validation failed", fields...)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
		Provider:     models.ProviderLocal,
	}
	if err := s.store.Users.Create(ctx, u); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.NewConflict("User already exists")
		}
		return nil, err
	}
	log.Info().Str("user", u.ID.String()).Msg("user registered")
	return s.session(u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.store.Users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if u == nil || !auth.CheckPassword(u.PasswordHash, password) {
		return nil, models.NewUnauthorized("Invalid email or password")
	}
	if !u.IsActive {
		return nil, models.NewUnauthorized("Account is disabled")
	}
	return s.session(u)
}

// AdminLogin is Login restricted to admin accounts.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*Session, error) {
	sess, err := s.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !sess.User.IsAdmin() {
		return nil, models.NewForbidden("Admin access required")
	}
	return sess, nil
}

// GoogleLogin signs in with a Firebase-verified Google ID token, creating the
// account on first use.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*Session, error) {
	if s.google == nil {
		return nil, models.NewNotFound("Google sign-in is not configured")
	}
	if strings.TrimSpace(idToken) == "" {
		return nil, models.NewValidationError("Invalid request payload", models.FieldError{Field: "idToken", Message: "required"})
	}
	profile, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	u, err := s.store.Users.FindByEmail(ctx, profile.Email)
	switch {
	case errors.Is(err, models.ErrNotFound):
		name := strings.TrimSpace(profile.Name)
		if name == "" {
			name = strings.Split(profile.Email, "@")[0]
		}
		u = &models.User{
			ID:       uuid.New(),
			Name:     name,
			Email:    strings.ToLower(profile.Email),
			Role:     models.RoleUser,
			IsActive: true,
			Provider: models.ProviderGoogle,
		}
		if err := s.store.Users.Create(ctx, u); err != nil {
			return nil, err
		}
		log.Info().Str("user", u.ID.String()).Msg("user created from google sign-in")
	case err != nil:
		return nil, err
	case !u.IsActive:
		return nil, models.NewUnauthorized("Account is disabled")
	}
	return s.session(u)
}

// Authenticate resolves an access token against the stored account, so a
// deleted, disabled or demoted user loses access before the token expires.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	claimed, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	u, err := s.store.Users.FindByID(ctx, claimed.UserID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewUnauthorized("Not authorized, user not found")
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, models.NewUnauthorized("Account is disabled")
	}
	return &models.Identity{UserID: u.ID, Name: u.Name, Role: u.Role}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	u, err := s.store.Users.FindByID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewNotFound("User not found")
	}
	return u, err
}

func (s *AuthService) session(u *models.User) (*Session, error) {
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u}, nil
}
