package lead_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/leadhub/svc/lead"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) ProductManufacturer(ctx context.Context, productID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockStorage) CreateLead(ctx context.Context, l *lead.Lead) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockStorage) GetLead(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lead.Lead), args.Error(1)
}

func (m *MockStorage) ListByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]lead.Lead, error) {
	args := m.Called(ctx, manufacturerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lead.Lead), args.Error(1)
}

func (m *MockStorage) UpdateStatus(ctx context.Context, id uuid.UUID, status string, updatedAt time.Time) error {
	return m.Called(ctx, id, status, updatedAt).Error(0)
}

// MockLimiter records the identifiers it was asked about.
type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Check(ctx context.Context, identifier string) bool {
	return m.Called(ctx, identifier).Bool(0)
}
