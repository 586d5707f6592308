package manufacturer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/modules/manufacturer"
	"github.com/dmitrymomot/leadhub/svc/auth"
	"github.com/dmitrymomot/leadhub/svc/catalog"
	"github.com/dmitrymomot/leadhub/svc/lead"
)

type MockProducts struct {
	mock.Mock
}

func (m *MockProducts) ListOwnProducts(ctx context.Context, actor *auth.Identity) ([]catalog.Product, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProducts) CreateProduct(ctx context.Context, actor *auth.Identity, in catalog.ProductInput) (*catalog.Product, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProducts) UpdateProduct(ctx context.Context, actor *auth.Identity, id uuid.UUID, in catalog.ProductInput) (*catalog.Product, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProducts) DeleteProduct(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

type MockLeads struct {
	mock.Mock
}

func (m *MockLeads) ListForManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]lead.Lead, error) {
	args := m.Called(ctx, manufacturerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lead.Lead), args.Error(1)
}

func (m *MockLeads) UpdateStatus(ctx context.Context, manufacturerID, leadID uuid.UUID, status string) (*lead.Lead, error) {
	args := m.Called(ctx, manufacturerID, leadID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lead.Lead), args.Error(1)
}

func identity() *auth.Identity {
	manufacturerID := uuid.New()
	return &auth.Identity{
		User: auth.User{ID: uuid.New(), Email: "owner@acme.test"},
		Profile: &auth.Profile{
			ID:             uuid.New(),
			Role:           auth.RoleManufacturer,
			Approved:       true,
			ManufacturerID: &manufacturerID,
		},
	}
}

func serve(h http.Handler, id *auth.Identity, req *http.Request) *httptest.ResponseRecorder {
	if id != nil {
		req = req.WithContext(auth.WithIdentity(req.Context(), id))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func newHandler(products *MockProducts, leads *MockLeads) http.Handler {
	return manufacturer.NewService(products, leads, handler.NewErrorHandler(nil, manufacturer.ErrorMappings...)).Handle()
}

func TestProducts(t *testing.T) {
	t.Parallel()

	t.Run("create binds json", func(t *testing.T) {
		t.Parallel()

		products, leads := &MockProducts{}, &MockLeads{}
		id := identity()
		in := catalog.ProductInput{Name: "Drill", Category: "Tools", Price: 49.9, Quantity: "100 pcs"}
		products.On("CreateProduct", mock.Anything, id, in).Return(&catalog.Product{ID: uuid.New(), Name: "Drill"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/products",
			strings.NewReader(`{"name":"Drill","category":"Tools","price":49.9,"quantity":"100 pcs"}`))
		req.Header.Set("Content-Type", "application/json")

		rec := serve(newHandler(products, leads), id, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
		products.AssertExpectations(t)
	})

	t.Run("update binds path and form", func(t *testing.T) {
		t.Parallel()

		products, leads := &MockProducts{}, &MockLeads{}
		id := identity()
		productID := uuid.New()
		in := catalog.ProductInput{Name: "Drill", Category: "Tools", Price: 10, Quantity: "5"}
		products.On("UpdateProduct", mock.Anything, id, productID, in).Return(&catalog.Product{ID: productID}, nil)

		req := httptest.NewRequest(http.MethodPut, "/products/"+productID.String(),
			strings.NewReader("name=Drill&category=Tools&price=10&quantity=5"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := serve(newHandler(products, leads), id, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		products.AssertExpectations(t)
	})

	t.Run("pending account is forbidden", func(t *testing.T) {
		t.Parallel()

		products, leads := &MockProducts{}, &MockLeads{}
		id := identity()
		products.On("DeleteProduct", mock.Anything, id, mock.Anything).Return(catalog.ErrNotApproved)

		req := httptest.NewRequest(http.MethodDelete, "/products/"+uuid.NewString(), nil)
		rec := serve(newHandler(products, leads), id, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		products, leads := &MockProducts{}, &MockLeads{}
		id := identity()
		productID := uuid.New()
		products.On("DeleteProduct", mock.Anything, id, productID).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/products/"+productID.String(), nil)
		rec := serve(newHandler(products, leads), id, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestLeads(t *testing.T) {
	t.Parallel()

	t.Run("lists own leads", func(t *testing.T) {
		t.Parallel()

		products, leads := &MockProducts{}, &MockLeads{}
		id := identity()
		leads.On("ListForManufacturer", mock.Anything, *id.Profile.ManufacturerID).
			Return([]lead.Lead{{ID: uuid.New(), BuyerName: "Jane"}}, nil)

		rec := serve(newHandler(products, leads), id, httptest.NewRequest(http.MethodGet, "/leads", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"buyer_name":"Jane"`)
	})

	t.Run("account without manufacturer", func(t *testing.T) {
		t.Parallel()

		products, leads := &MockProducts{}, &MockLeads{}
		id := &auth.Identity{User: auth.User{ID: uuid.New()}, IsAdmin: true}

		rec := serve(newHandler(products, leads), id, httptest.NewRequest(http.MethodGet, "/leads", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		leads.AssertNotCalled(t, "ListForManufacturer", mock.Anything, mock.Anything)
	})

	t.Run("updates status", func(t *testing.T) {
		t.Parallel()

		products, leads := &MockProducts{}, &MockLeads{}
		id := identity()
		leadID := uuid.New()
		leads.On("UpdateStatus", mock.Anything, *id.Profile.ManufacturerID, leadID, lead.StatusContacted).
			Return(&lead.Lead{ID: leadID, Status: lead.StatusContacted}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/leads/"+leadID.String(), strings.NewReader(`{"status":"contacted"}`))
		req.Header.Set("Content-Type", "application/json")

		rec := serve(newHandler(products, leads), id, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"contacted"`)
	})

	t.Run("foreign lead", func(t *testing.T) {
		t.Parallel()

		products, leads := &MockProducts{}, &MockLeads{}
		id := identity()
		leads.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, lead.ErrForbidden)

		req := httptest.NewRequest(http.MethodPatch, "/leads/"+uuid.NewString(), strings.NewReader(`{"status":"closed"}`))
		req.Header.Set("Content-Type", "application/json")

		assert.Equal(t, http.StatusForbidden, serve(newHandler(products, leads), id, req).Code)
	})
}
