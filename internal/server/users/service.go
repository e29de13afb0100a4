package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/microstory/server/internal/server/auth"
	"github.com/microstory/server/internal/server/config"
	"github.com/microstory/server/internal/shared"
)

// AuthResult is what a successful registration or login returns: the public
// user fields and a freshly signed session token.
type AuthResult struct {
	User  PublicUser
	Token string
}

// ProfileUpdate carries the optional changes for UpdateProfile. A non-nil
// Password is re-hashed before it reaches the store.
type ProfileUpdate struct {
	Pseudo   *string
	Email    *string
	Password *string
}

// Service turns raw credentials into validated, hashed, persisted identities
// and signed sessions. It holds no user state of its own; the repository owns
// persistence.
type Service struct {
	repo          Repository
	validate      *validator.Validate
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:          repo,
		validate:      validator.New(),
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.SessionTokenValidity,
		bcryptCost:    cfg.BcryptCost,
	}
}

type registerInput struct {
	Pseudo   string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// fieldName maps a validator struct field to the wire-level field tag.
var fieldName = map[string]string{
	"Pseudo":   "pseudo",
	"Email":    "email",
	"Password": "password",
}

func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}

	fe := ve[0]
	field := fieldName[fe.StructField()]
	if field == "" {
		field = strings.ToLower(fe.StructField())
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "email":
		msg = "must be a valid email address"
	case "min":
		msg = fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		msg = "is invalid"
	}

	return shared.NewValidationError(field, msg)
}

// Register validates the input, hashes the password, persists the user, and
// issues a session token. The plaintext password and its hash never appear in
// the result.
func (s *Service) Register(ctx context.Context, pseudo, email, password string) (*AuthResult, error) {
	pseudo = strings.TrimSpace(pseudo)

	in := registerInput{Pseudo: pseudo, Email: email, Password: password}
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	// Pre-check for a friendlier error; the store's uniqueness constraint
	// still decides the race between concurrent registrations.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, shared.ErrDuplicateEmail
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repo.Create(ctx, &User{Pseudo: pseudo, Email: email, Password: string(hash)})
	if err != nil {
		if errors.Is(err, shared.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, shared.ErrInternal
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password are indistinguishable to the caller: both return
// shared.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	in := loginInput{Email: email, Password: password}
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, shared.ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, shared.ErrInternal
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// GetProfile returns the public fields of the user with the given id.
func (s *Service) GetProfile(ctx context.Context, id int64) (*PublicUser, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return nil, shared.ErrInternal
	}

	pub := user.Public()
	return &pub, nil
}

// UpdateProfile applies the allow-listed changes and returns the refreshed
// public profile. Provided fields are validated with the same rules as
// registration.
func (s *Service) UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*PublicUser, error) {
	fields := UpdateFields{}

	if upd.Pseudo != nil {
		pseudo := strings.TrimSpace(*upd.Pseudo)
		if err := s.validate.Var(pseudo, "required,min=3"); err != nil {
			return nil, shared.NewValidationError("pseudo", "must be at least 3 characters")
		}
		fields.Pseudo = &pseudo
	}
	if upd.Email != nil {
		if err := s.validate.Var(*upd.Email, "required,email"); err != nil {
			return nil, shared.NewValidationError("email", "must be a valid email address")
		}
		fields.Email = upd.Email
	}
	if upd.Password != nil {
		if err := s.validate.Var(*upd.Password, "required,min=8"); err != nil {
			return nil, shared.NewValidationError("password", "must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		hashed := string(hash)
		fields.Password = &hashed
	}

	if fields.IsEmpty() {
		return nil, shared.NewValidationError("fields", "no updatable field provided")
	}

	if _, err := s.repo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, shared.ErrNotFound) || errors.Is(err, shared.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, shared.ErrInternal
	}

	return s.GetProfile(ctx, id)
}

// DeleteAccount removes the user row; comments, posts and reactions cascade.
func (s *Service) DeleteAccount(ctx context.Context, id int64) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return shared.ErrInternal
	}
	if !removed {
		return shared.ErrNotFound
	}
	return nil
}
