package lead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/leadhub/pkg/logger"
	"github.com/dmitrymomot/leadhub/pkg/sanitizer"
	"github.com/dmitrymomot/leadhub/pkg/validator"
)

const (
	maxNameLength    = 100
	maxMessageLength = 2000
)

// Outcomes passed to the submission observer.
const (
	OutcomeAccepted    = "accepted"
	OutcomeRateLimited = "rate_limited"
	OutcomeInvalid     = "invalid"
	OutcomeFailed      = "failed"
)

// ErrProductNotFound is returned by Storage.ProductManufacturer for unknown
// products.
var ErrProductNotFound = errors.New("product not found")

// Storage persists leads.
type Storage interface {
	// ProductManufacturer returns the manufacturer owning the product.
	ProductManufacturer(ctx context.Context, productID uuid.UUID) (uuid.UUID, error)
	CreateLead(ctx context.Context, l *Lead) error
	GetLead(ctx context.Context, id uuid.UUID) (*Lead, error)
	ListByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, updatedAt time.Time) error
}

// RateLimiter admits or rejects an attempt for an identifier.
type RateLimiter interface {
	Check(ctx context.Context, identifier string) bool
}

type Service struct {
	storage  Storage
	limiter  RateLimiter
	logger   *slog.Logger
	now      func() time.Time
	observer func(outcome string)
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithObserver receives the outcome of every Submit call.
func WithObserver(fn func(outcome string)) Option {
	return func(s *Service) {
		s.observer = fn
	}
}

func NewService(storage Storage, limiter RateLimiter, opts ...Option) *Service {
	s := &Service{
		storage:  storage,
		limiter:  limiter,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		observer: func(string) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit sanitizes, rate-limits, validates and stores an inquiry.
func (s *Service) Submit(ctx context.Context, in Inquiry) (*Lead, error) {
	in.Name = sanitizer.SanitizeInput(in.Name)
	in.Email = sanitizer.SanitizeInput(in.Email)
	in.Phone = sanitizer.SanitizeInput(in.Phone)
	in.Message = sanitizer.SanitizeInput(in.Message)

	identifier := in.Email
	if identifier == "" {
		identifier = AnonymousIdentifier
	}
	if !s.limiter.Check(ctx, identifier) {
		s.observer(OutcomeRateLimited)
		s.logger.WarnContext(ctx, "inquiry rate limited",
			logger.Component("lead"),
			slog.String("identifier", identifier),
		)
		return nil, ErrRateLimited
	}

	if err := validator.Apply(
		validator.Required("name", in.Name),
		validator.MaxLen("name", in.Name, maxNameLength),
		validator.ValidEmail("email", in.Email),
		validator.OptionalPhone("phone", in.Phone),
		validator.MaxLen("message", in.Message, maxMessageLength),
		validator.Rule{
			Check: func() bool { return in.ProductID != uuid.Nil || in.ManufacturerID != uuid.Nil },
			Error: validator.ValidationError{
				Field:          "product_id",
				Message:        "product or manufacturer is required",
				TranslationKey: "validation.required",
			},
		},
	); err != nil {
		s.observer(OutcomeInvalid)
		return nil, err
	}

	l := &Lead{
		ID:             uuid.New(),
		ManufacturerID: in.ManufacturerID,
		BuyerName:      in.Name,
		BuyerEmail:     in.Email,
		BuyerPhone:     in.Phone,
		Message:        in.Message,
		Status:         StatusNew,
	}
	l.CreatedAt = s.now()
	l.UpdatedAt = l.CreatedAt

	if in.ProductID != uuid.Nil {
		manufacturerID, err := s.storage.ProductManufacturer(ctx, in.ProductID)
		if errors.Is(err, ErrProductNotFound) {
			s.observer(OutcomeInvalid)
			var ve validator.ValidationErrors
			ve.Add(validator.ValidationError{Field: "product_id", Message: "product does not exist", TranslationKey: "validation.not_found"})
			return nil, ve
		}
		if err != nil {
			s.observer(OutcomeFailed)
			return nil, errors.Join(ErrSubmitFailed, err)
		}
		productID := in.ProductID
		l.ProductID = &productID
		l.ManufacturerID = manufacturerID
	}

	if err := s.storage.CreateLead(ctx, l); err != nil {
		s.observer(OutcomeFailed)
		s.logger.ErrorContext(ctx, "failed to store lead",
			logger.Component("lead"),
			logger.ManufacturerID(l.ManufacturerID),
			logger.Error(err),
		)
		return nil, errors.Join(ErrSubmitFailed, err)
	}

	s.observer(OutcomeAccepted)
	s.logger.InfoContext(ctx, "inquiry submitted",
		logger.Component("lead"),
		logger.LeadID(l.ID),
		logger.ManufacturerID(l.ManufacturerID),
	)
	return l, nil
}

// ListForManufacturer returns the manufacturer's leads, newest first.
func (s *Service) ListForManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]Lead, error) {
	leads, err := s.storage.ListByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	if leads == nil {
		leads = []Lead{}
	}
	return leads, nil
}

// UpdateStatus moves a lead owned by manufacturerID to status.
func (s *Service) UpdateStatus(ctx context.Context, manufacturerID, leadID uuid.UUID, status string) (*Lead, error) {
	if err := validator.Apply(
		validator.OneOf("status", status, Statuses),
	); err != nil {
		return nil, err
	}

	l, err := s.storage.GetLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if l.ManufacturerID != manufacturerID {
		return nil, ErrForbidden
	}

	now := s.now()
	if err := s.storage.UpdateStatus(ctx, leadID, status, now); err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}

	s.logger.InfoContext(ctx, "lead status updated",
		logger.Component("lead"),
		logger.LeadID(leadID),
		slog.String("from", l.Status),
		slog.String("to", status),
	)

	l.Status = status
	l.UpdatedAt = now
	return l, nil
}
