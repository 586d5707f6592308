package marketplace

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/pkg/binder"
	"github.com/dmitrymomot/leadhub/pkg/csrf"
	"github.com/dmitrymomot/leadhub/pkg/ratelimiter"
	"github.com/dmitrymomot/leadhub/pkg/session"
	"github.com/dmitrymomot/leadhub/svc/catalog"
	"github.com/dmitrymomot/leadhub/svc/lead"
)

// Catalog is the read side of catalog.Service.
type Catalog interface {
	ListProducts(ctx context.Context, f catalog.Filter) (*catalog.Page, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	GetManufacturer(ctx context.Context, id uuid.UUID) (*catalog.ManufacturerDetail, error)
	Categories(ctx context.Context) ([]string, error)
}

// Inquiries accepts buyer inquiries.
type Inquiries interface {
	Submit(ctx context.Context, in lead.Inquiry) (*lead.Lead, error)
}

type Service struct {
	catalog      Catalog
	inquiries    Inquiries
	csrf         *csrf.Manager
	sessions     *session.Manager
	limiter      *ratelimiter.Limiter
	csrfOptions  []csrf.MiddlewareOption
	errorHandler handler.ErrorHandler
}

type Option func(*Service)

// WithErrorHandler sets the handler for failed requests.
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(s *Service) {
		s.errorHandler = h
	}
}

// WithRequestLimiter throttles inquiry posts per client IP, in addition to
// the per-email limit applied by the inquiry workflow.
func WithRequestLimiter(l *ratelimiter.Limiter) Option {
	return func(s *Service) {
		s.limiter = l
	}
}

// WithCSRFOptions configures the CSRF middleware guarding inquiry posts.
func WithCSRFOptions(opts ...csrf.MiddlewareOption) Option {
	return func(s *Service) {
		s.csrfOptions = append(s.csrfOptions, opts...)
	}
}

func NewService(cat Catalog, inquiries Inquiries, csrfMgr *csrf.Manager, sessions *session.Manager, opts ...Option) *Service {
	s := &Service{
		catalog:   cat,
		inquiries: inquiries,
		csrf:      csrfMgr,
		sessions:  sessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", handler.Wrap(s.listProducts,
		handler.WithBinders[catalog.Filter](binder.Query()),
		handler.WithErrorHandler[catalog.Filter](s.errorHandler),
	))
	r.Get("/products/{id}", handler.Wrap(s.getProduct,
		handler.WithBinders[idRequest](binder.Path()),
		handler.WithErrorHandler[idRequest](s.errorHandler),
	))
	r.Get("/categories", handler.Wrap(s.categories,
		handler.WithErrorHandler[struct{}](s.errorHandler),
	))
	r.Get("/manufacturers/{id}", handler.Wrap(s.getManufacturer,
		handler.WithBinders[idRequest](binder.Path()),
		handler.WithErrorHandler[idRequest](s.errorHandler),
	))

	r.Route("/inquiries", func(r chi.Router) {
		r.With(s.sessions.Ensure).Get("/token", handler.Wrap(s.issueToken,
			handler.WithErrorHandler[struct{}](s.errorHandler),
		))

		post := r.With(s.sessions.Middleware)
		if s.limiter != nil {
			post = post.With(ratelimiter.Middleware(s.limiter, ratelimiter.Composite(ratelimiter.ByIP, ratelimiter.ByPath)))
		}
		post = post.With(csrf.Middleware(s.csrf, sessionID, s.csrfOptions...))
		post.Post("/", handler.Wrap(s.submitInquiry,
			handler.WithBinders[InquiryRequest](binder.JSON(), binder.Form()),
			handler.WithErrorHandler[InquiryRequest](s.errorHandler),
		))
	})

	return r
}

func sessionID(r *http.Request) string {
	return session.IDFromContext(r.Context())
}

type idRequest struct {
	ID uuid.UUID `path:"id"`
}

func (s *Service) listProducts(ctx handler.Context, f catalog.Filter) handler.Response {
	page, err := s.catalog.ListProducts(ctx, f)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(page.Items, handler.WithJSONMeta(map[string]any{
		"total":  page.Total,
		"limit":  page.Limit,
		"offset": page.Offset,
	}))
}

func (s *Service) getProduct(ctx handler.Context, req idRequest) handler.Response {
	p, err := s.catalog.GetProduct(ctx, req.ID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(p)
}

func (s *Service) categories(ctx handler.Context, _ struct{}) handler.Response {
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(categories)
}

func (s *Service) getManufacturer(ctx handler.Context, req idRequest) handler.Response {
	m, err := s.catalog.GetManufacturer(ctx, req.ID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(m)
}

// TokenResponse carries a fresh CSRF token for the inquiry form.
type TokenResponse struct {
	Token  string `json:"csrf_token"`
	Header string `json:"header"`
	Field  string `json:"field"`
}

// issueToken replaces the session's CSRF slot; every form mount gets a new
// token and invalidates the previous one.
func (s *Service) issueToken(ctx handler.Context, _ struct{}) handler.Response {
	token, err := s.csrf.Issue(ctx, session.IDFromContext(ctx))
	if err != nil {
		return handler.Error(err)
	}
	ctx.ResponseWriter().Header().Set("Cache-Control", "no-store")
	return handler.JSON(TokenResponse{Token: token, Header: csrf.HeaderName, Field: csrf.FormField})
}

// InquiryRequest is the inquiry form. The CSRF token may travel in the body
// of JSON requests; it is checked by middleware before binding.
type InquiryRequest struct {
	lead.Inquiry
	CSRFToken string `json:"csrf_token" form:"-"`
}

func (s *Service) submitInquiry(ctx handler.Context, req InquiryRequest) handler.Response {
	l, err := s.inquiries.Submit(ctx, req.Inquiry)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(l, handler.WithJSONStatus(http.StatusCreated))
}
