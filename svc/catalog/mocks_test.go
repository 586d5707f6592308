package catalog_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/leadhub/svc/catalog"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) ListProducts(ctx context.Context, f catalog.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockStorage) CountProducts(ctx context.Context, f catalog.Filter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockStorage) ListProductsByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, manufacturerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockStorage) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) GetManufacturer(ctx context.Context, id uuid.UUID) (*catalog.Manufacturer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Manufacturer), args.Error(1)
}

func (m *MockStorage) CreateManufacturer(ctx context.Context, mf *catalog.Manufacturer) error {
	return m.Called(ctx, mf).Error(0)
}

func (m *MockStorage) CreateProduct(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockStorage) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockStorage) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
