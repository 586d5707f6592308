package admin_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/leadhub/svc/admin"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CountManufacturerProfiles(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockStorage) CountProducts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) CountLeads(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) ListManufacturers(ctx context.Context, search string) ([]admin.ManufacturerAccount, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]admin.ManufacturerAccount), args.Error(1)
}

func (m *MockStorage) GetManufacturerAccount(ctx context.Context, profileID uuid.UUID) (*admin.ManufacturerAccount, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.ManufacturerAccount), args.Error(1)
}

func (m *MockStorage) SetApproved(ctx context.Context, profileIDs []uuid.UUID, approved bool) (int, error) {
	args := m.Called(ctx, profileIDs, approved)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) InsertAuditLog(ctx context.Context, a admin.Action) error {
	return m.Called(ctx, a).Error(0)
}
