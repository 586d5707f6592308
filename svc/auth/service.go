package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/leadhub/pkg/logger"
	"github.com/dmitrymomot/leadhub/pkg/sanitizer"
	"github.com/dmitrymomot/leadhub/pkg/validator"
)

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordLength = 72
	maxCompanyName    = 200
)

// Storage persists accounts. Lookups return ErrUserNotFound or
// ErrProfileNotFound when nothing matches.
type Storage interface {
	CreateAccount(ctx context.Context, reg Registration) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	// CreateAdmin reports false when the user already was an admin.
	CreateAdmin(ctx context.Context, userID uuid.UUID, role string) (bool, error)
}

// Service implements password authentication for marketplace accounts.
type Service struct {
	storage    Storage
	logger     *slog.Logger
	bcryptCost int
	now        func() time.Time

	mu           sync.RWMutex
	listeners    map[int]Listener
	nextListener int
}

type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBcryptCost sets the bcrypt cost for new password hashes.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// WithClock overrides time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		logger:     slog.New(slog.DiscardHandler),
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
		listeners:  make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUp registers a manufacturer account. The profile starts unapproved.
func (s *Service) SignUp(ctx context.Context, email, password, companyName string) (*Identity, error) {
	email = sanitizer.NormalizeEmail(email)
	companyName = sanitizer.SanitizeInput(companyName)

	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.MinLen("password", password, minPasswordLength),
		validator.MaxLen("password", password, maxPasswordLength),
		validator.Required("company_name", companyName),
		validator.MaxLen("company_name", companyName, maxCompanyName),
	); err != nil {
		return nil, err
	}

	_, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	reg := Registration{
		User: User{
			ID:        uuid.New(),
			Email:     email,
			CreatedAt: now,
		},
		PasswordHash:   hash,
		ProfileID:      uuid.New(),
		ManufacturerID: uuid.New(),
		CompanyName:    companyName,
	}

	if err := s.storage.CreateAccount(ctx, reg); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, errors.Join(ErrSignUpFailed, err)
	}

	s.logger.InfoContext(ctx, "manufacturer account created",
		logger.Component("auth"),
		logger.UserID(reg.User.ID),
		logger.ManufacturerID(reg.ManufacturerID),
	)
	s.emit(ctx, EventSignedUp, reg.User.ID)

	manufacturerID := reg.ManufacturerID
	return &Identity{
		User: reg.User,
		Profile: &Profile{
			ID:             reg.ProfileID,
			UserID:         reg.User.ID,
			Role:           RoleManufacturer,
			Approved:       false,
			ManufacturerID: &manufacturerID,
			CreatedAt:      now,
		},
	}, nil
}

// SignIn verifies credentials. Every failure is reported as
// ErrInvalidCredentials so callers cannot probe for registered emails.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	email = sanitizer.NormalizeEmail(email)

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.logger.ErrorContext(ctx, "failed to load user for sign in",
				logger.Component("auth"),
				logger.Error(err),
			)
		}
		return nil, ErrInvalidCredentials
	}

	hash, err := s.storage.GetPasswordHash(ctx, user.ID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	id, err := s.identityFor(ctx, user)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, EventSignedIn, user.ID)
	return id, nil
}

// Identity loads the user, its profile (nil for admin-only accounts) and the
// admin flag.
func (s *Service) Identity(ctx context.Context, userID uuid.UUID) (*Identity, error) {
	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.identityFor(ctx, user)
}

func (s *Service) identityFor(ctx context.Context, user *User) (*Identity, error) {
	profile, err := s.storage.GetProfile(ctx, user.ID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	isAdmin, err := s.storage.IsAdmin(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin role: %w", err)
	}

	return &Identity{User: *user, Profile: profile, IsAdmin: isAdmin}, nil
}

// SignOut announces the end of a user's session. Session storage itself is
// cleared by the HTTP layer.
func (s *Service) SignOut(ctx context.Context, userID uuid.UUID) {
	s.emit(ctx, EventSignedOut, userID)
}

// CreateAdmin grants the admin role to an existing user. It reports false
// when the user already was an admin.
func (s *Service) CreateAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	if _, err := s.storage.GetUserByID(ctx, userID); err != nil {
		return false, err
	}

	created, err := s.storage.CreateAdmin(ctx, userID, RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	if created {
		s.logger.InfoContext(ctx, "admin role granted",
			logger.Component("auth"),
			logger.UserID(userID),
		)
	}
	return created, nil
}

// IsAdmin reports whether the user holds the admin role.
func (s *Service) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.storage.IsAdmin(ctx, userID)
}

// CreateAdminByEmail grants the admin role to the user registered with email.
func (s *Service) CreateAdminByEmail(ctx context.Context, email string) (*User, bool, error) {
	user, err := s.storage.GetUserByEmail(ctx, sanitizer.NormalizeEmail(email))
	if err != nil {
		return nil, false, err
	}
	created, err := s.CreateAdmin(ctx, user.ID)
	if err != nil {
		return nil, false, err
	}
	return user, created, nil
}
