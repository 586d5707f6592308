package marketplace_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/modules/marketplace"
	"github.com/dmitrymomot/leadhub/pkg/cookie"
	"github.com/dmitrymomot/leadhub/pkg/csrf"
	"github.com/dmitrymomot/leadhub/pkg/session"
	"github.com/dmitrymomot/leadhub/pkg/validator"
	"github.com/dmitrymomot/leadhub/svc/catalog"
	"github.com/dmitrymomot/leadhub/svc/lead"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListProducts(ctx context.Context, f catalog.Filter) (*catalog.Page, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Page), args.Error(1)
}

func (m *MockCatalog) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockCatalog) GetManufacturer(ctx context.Context, id uuid.UUID) (*catalog.ManufacturerDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ManufacturerDetail), args.Error(1)
}

func (m *MockCatalog) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockInquiries struct {
	mock.Mock
}

func (m *MockInquiries) Submit(ctx context.Context, in lead.Inquiry) (*lead.Lead, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lead.Lead), args.Error(1)
}

type fixture struct {
	catalog   *MockCatalog
	inquiries *MockInquiries
	handler   http.Handler
	failures  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	jar, err := cookie.New([]string{strings.Repeat("k", 32)})
	require.NoError(t, err)
	sessions := session.NewManager(session.NewMemoryStore(0), jar, session.Config{})

	f := &fixture{catalog: &MockCatalog{}, inquiries: &MockInquiries{}}
	svc := marketplace.NewService(f.catalog, f.inquiries, csrf.NewManager(csrf.NewMemoryStore()), sessions,
		marketplace.WithErrorHandler(handler.NewErrorHandler(nil, marketplace.ErrorMappings...)),
		marketplace.WithCSRFOptions(csrf.WithFailureHandler(func(w http.ResponseWriter, _ *http.Request) {
			f.failures++
			http.Error(w, "Forbidden", http.StatusForbidden)
		})),
	)
	f.handler = svc.Handle()
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

// issueToken mounts the inquiry form and returns its session cookie and token.
func (f *fixture) issueToken(t *testing.T) (*http.Cookie, string) {
	t.Helper()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/inquiries/token", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	var body struct {
		Data marketplace.TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.Token)
	assert.Equal(t, csrf.HeaderName, body.Data.Header)
	return cookies[0], body.Data.Token
}

func TestInquiries(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	jsonBody := `{"product_id":"` + productID.String() + `","name":"Jane","email":"jane@example.com","message":"Need 200 units"}`
	wantInquiry := lead.Inquiry{ProductID: productID, Name: "Jane", Email: "jane@example.com", Message: "Need 200 units"}

	t.Run("json with header token", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		sid, token := f.issueToken(t)
		f.inquiries.On("Submit", mock.Anything, wantInquiry).
			Return(&lead.Lead{ID: uuid.New(), Status: lead.StatusNew}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/inquiries", strings.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(csrf.HeaderName, token)
		req.AddCookie(sid)

		rec := f.do(req)
		assert.Equal(t, http.StatusCreated, rec.Code)
		f.inquiries.AssertExpectations(t)
	})

	t.Run("form with field token", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		sid, token := f.issueToken(t)
		f.inquiries.On("Submit", mock.Anything, wantInquiry).
			Return(&lead.Lead{ID: uuid.New(), Status: lead.StatusNew}, nil).Once()

		form := url.Values{
			"product_id": {productID.String()},
			"name":       {"Jane"},
			"email":      {"jane@example.com"},
			"message":    {"Need 200 units"},
			"csrf_token": {token},
		}
		req := httptest.NewRequest(http.MethodPost, "/inquiries", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(sid)

		rec := f.do(req)
		assert.Equal(t, http.StatusCreated, rec.Code)
		f.inquiries.AssertExpectations(t)
	})

	t.Run("missing token is forbidden", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		sid, _ := f.issueToken(t)

		req := httptest.NewRequest(http.MethodPost, "/inquiries", strings.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(sid)

		rec := f.do(req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, 1, f.failures)
		f.inquiries.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("superseded token is forbidden", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		sid, first := f.issueToken(t)

		remount := httptest.NewRequest(http.MethodGet, "/inquiries/token", nil)
		remount.AddCookie(sid)
		require.Equal(t, http.StatusOK, f.do(remount).Code)

		req := httptest.NewRequest(http.MethodPost, "/inquiries", strings.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(csrf.HeaderName, first)
		req.AddCookie(sid)

		assert.Equal(t, http.StatusForbidden, f.do(req).Code)
	})

	t.Run("without session is forbidden", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		req := httptest.NewRequest(http.MethodPost, "/inquiries", strings.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(csrf.HeaderName, csrf.GenerateToken())

		assert.Equal(t, http.StatusForbidden, f.do(req).Code)
	})

	t.Run("rate limited", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		sid, token := f.issueToken(t)
		f.inquiries.On("Submit", mock.Anything, mock.Anything).Return(nil, lead.ErrRateLimited)

		req := httptest.NewRequest(http.MethodPost, "/inquiries", strings.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(csrf.HeaderName, token)
		req.AddCookie(sid)

		rec := f.do(req)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("validation errors are unprocessable", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		sid, token := f.issueToken(t)
		f.inquiries.On("Submit", mock.Anything, mock.Anything).Return(nil, validator.ValidationErrors{
			{Field: "email", Message: "invalid email"},
		})

		req := httptest.NewRequest(http.MethodPost, "/inquiries", strings.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(csrf.HeaderName, token)
		req.AddCookie(sid)

		rec := f.do(req)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body handler.JSONResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotNil(t, body.Error)
		assert.Equal(t, []string{"invalid email"}, body.Error.Details["email"])
	})
}

func TestProducts(t *testing.T) {
	t.Parallel()

	t.Run("binds filter from query", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		minPrice := 5.5
		f.catalog.On("ListProducts", mock.Anything, catalog.Filter{
			Category: "Tools",
			Search:   "drill",
			MinPrice: &minPrice,
			Limit:    5,
		}).Return(&catalog.Page{Items: []catalog.Product{{Name: "Drill"}}, Total: 1, Limit: 5}, nil)

		rec := f.do(httptest.NewRequest(http.MethodGet, "/products?category=Tools&q=drill&min_price=5.5&limit=5", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body handler.JSONResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.EqualValues(t, 1, body.Meta["total"])
		f.catalog.AssertExpectations(t)
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		id := uuid.New()
		f.catalog.On("GetProduct", mock.Anything, id).Return(nil, catalog.ErrProductNotFound)

		rec := f.do(httptest.NewRequest(http.MethodGet, "/products/"+id.String(), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec := f.do(httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.catalog.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
	})

	t.Run("categories", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.catalog.On("Categories", mock.Anything).Return([]string{"Electronics", "Tools"}, nil)

		rec := f.do(httptest.NewRequest(http.MethodGet, "/categories", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":["Electronics","Tools"]}`, rec.Body.String())
	})
}
