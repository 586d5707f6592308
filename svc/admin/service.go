package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/leadhub/pkg/logger"
	"github.com/dmitrymomot/leadhub/pkg/sanitizer"
)

// Storage reads aggregate data and writes approval changes and audit rows.
type Storage interface {
	CountManufacturerProfiles(ctx context.Context) (total, approved int, err error)
	CountProducts(ctx context.Context) (int, error)
	// CountLeads counts leads created at or after since.
	CountLeads(ctx context.Context, since time.Time) (int, error)
	ListManufacturers(ctx context.Context, search string) ([]ManufacturerAccount, error)
	GetManufacturerAccount(ctx context.Context, profileID uuid.UUID) (*ManufacturerAccount, error)
	// SetApproved updates the given profiles and returns how many changed.
	SetApproved(ctx context.Context, profileIDs []uuid.UUID, approved bool) (int, error)
	InsertAuditLog(ctx context.Context, a Action) error
}

type Service struct {
	storage Storage
	logger  *slog.Logger
	now     func() time.Time
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

func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats aggregates the dashboard counters. "Today" starts at UTC midnight.
func (s *Service) Stats(ctx context.Context, actor Actor) (*DashboardStats, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}

	total, approved, err := s.storage.CountManufacturerProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count manufacturers: %w", err)
	}
	products, err := s.storage.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	leads, err := s.storage.CountLeads(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	today, err := s.storage.CountLeads(ctx, midnight)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's leads: %w", err)
	}

	return &DashboardStats{
		TotalManufacturers:    total,
		ApprovedManufacturers: approved,
		PendingApprovals:      total - approved,
		TotalProducts:         products,
		TotalLeads:            leads,
		NewLeadsToday:         today,
	}, nil
}

// ListManufacturers returns manufacturer accounts, newest first. search
// matches company name or email.
func (s *Service) ListManufacturers(ctx context.Context, actor Actor, search string) ([]ManufacturerAccount, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	accounts, err := s.storage.ListManufacturers(ctx, sanitizer.NormalizeWhitespace(sanitizer.SanitizeInput(search)))
	if err != nil {
		return nil, fmt.Errorf("failed to list manufacturers: %w", err)
	}
	if accounts == nil {
		accounts = []ManufacturerAccount{}
	}
	return accounts, nil
}

// Approve marks a manufacturer profile approved.
func (s *Service) Approve(ctx context.Context, actor Actor, profileID uuid.UUID) (*ManufacturerAccount, error) {
	return s.setApproval(ctx, actor, profileID, true, ActionApproveManufacturer)
}

// Reject revokes a manufacturer's approval.
func (s *Service) Reject(ctx context.Context, actor Actor, profileID uuid.UUID) (*ManufacturerAccount, error) {
	return s.setApproval(ctx, actor, profileID, false, ActionRejectManufacturer)
}

func (s *Service) setApproval(ctx context.Context, actor Actor, profileID uuid.UUID, approved bool, action string) (*ManufacturerAccount, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}

	account, err := s.storage.GetManufacturerAccount(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if _, err := s.storage.SetApproved(ctx, []uuid.UUID{profileID}, approved); err != nil {
		return nil, fmt.Errorf("failed to update approval: %w", err)
	}

	a := s.approvalAction(actor, action, profileID, approved)
	a.OldData = map[string]any{"approved": account.Approved}
	s.LogAction(ctx, a)

	account.Approved = approved
	return account, nil
}

// BulkApprove approves every listed profile and returns how many changed.
func (s *Service) BulkApprove(ctx context.Context, actor Actor, profileIDs []uuid.UUID) (int, error) {
	if err := authorize(actor); err != nil {
		return 0, err
	}
	if len(profileIDs) == 0 {
		return 0, nil
	}

	n, err := s.storage.SetApproved(ctx, profileIDs, true)
	if err != nil {
		return 0, fmt.Errorf("failed to approve manufacturers: %w", err)
	}

	// Prior state is not loaded for bulk updates, so entries carry no OldData.
	for _, id := range profileIDs {
		s.LogAction(ctx, s.approvalAction(actor, ActionBulkApprove, id, true))
	}
	return n, nil
}

func (s *Service) approvalAction(actor Actor, action string, profileID uuid.UUID, approved bool) Action {
	target := profileID
	return Action{
		AdminUserID: actor.Identity.User.ID,
		Action:      action,
		TargetTable: profilesTable,
		TargetID:    &target,
		NewData:     map[string]any{"approved": approved},
		IP:          actor.IP,
		UserAgent:   actor.UserAgent,
	}
}

// LogAction writes an audit entry. Failures are logged and never returned:
// a broken audit log must not block the action being audited.
func (s *Service) LogAction(ctx context.Context, a Action) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	if err := s.storage.InsertAuditLog(ctx, a); err != nil {
		s.logger.ErrorContext(ctx, "failed to write audit log",
			logger.Component("admin"),
			logger.Action(a.Action),
			logger.UserID(a.AdminUserID),
			logger.Error(err),
		)
	}
}

func authorize(actor Actor) error {
	if actor.Identity == nil || !actor.Identity.IsAdmin {
		return ErrForbidden
	}
	return nil
}
