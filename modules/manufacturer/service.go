package manufacturer

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/pkg/binder"
	"github.com/dmitrymomot/leadhub/svc/auth"
	"github.com/dmitrymomot/leadhub/svc/catalog"
	"github.com/dmitrymomot/leadhub/svc/lead"
)

// Products is the manufacturer-facing side of catalog.Service.
type Products interface {
	ListOwnProducts(ctx context.Context, actor *auth.Identity) ([]catalog.Product, error)
	CreateProduct(ctx context.Context, actor *auth.Identity, in catalog.ProductInput) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, actor *auth.Identity, id uuid.UUID, in catalog.ProductInput) (*catalog.Product, error)
	DeleteProduct(ctx context.Context, actor *auth.Identity, id uuid.UUID) error
}

// Leads is the manufacturer-facing side of lead.Service.
type Leads interface {
	ListForManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]lead.Lead, error)
	UpdateStatus(ctx context.Context, manufacturerID, leadID uuid.UUID, status string) (*lead.Lead, error)
}

// Service expects auth.Identity in the request context; mount it behind
// account.RequireIdentity.
type Service struct {
	products     Products
	leads        Leads
	errorHandler handler.ErrorHandler
}

func NewService(products Products, leads Leads, errorHandler handler.ErrorHandler) *Service {
	return &Service{products: products, leads: leads, errorHandler: errorHandler}
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", handler.Wrap(s.listProducts,
		handler.WithErrorHandler[struct{}](s.errorHandler),
	))
	r.Post("/products", handler.Wrap(s.createProduct,
		handler.WithBinders[catalog.ProductInput](binder.JSON(), binder.Form()),
		handler.WithErrorHandler[catalog.ProductInput](s.errorHandler),
	))
	r.Put("/products/{id}", handler.Wrap(s.updateProduct,
		handler.WithBinders[UpdateProductRequest](binder.Path(), binder.JSON(), binder.Form()),
		handler.WithErrorHandler[UpdateProductRequest](s.errorHandler),
	))
	r.Delete("/products/{id}", handler.Wrap(s.deleteProduct,
		handler.WithBinders[idRequest](binder.Path()),
		handler.WithErrorHandler[idRequest](s.errorHandler),
	))

	r.Get("/leads", handler.Wrap(s.listLeads,
		handler.WithErrorHandler[struct{}](s.errorHandler),
	))
	r.Patch("/leads/{id}", handler.Wrap(s.updateLead,
		handler.WithBinders[UpdateLeadRequest](binder.Path(), binder.JSON(), binder.Form()),
		handler.WithErrorHandler[UpdateLeadRequest](s.errorHandler),
	))

	return r
}

type idRequest struct {
	ID uuid.UUID `path:"id"`
}

// UpdateProductRequest replaces every editable field of a product.
type UpdateProductRequest struct {
	ID uuid.UUID `path:"id" json:"-" form:"-"`
	catalog.ProductInput
}

// UpdateLeadRequest moves a lead through the status workflow.
type UpdateLeadRequest struct {
	ID     uuid.UUID `path:"id" json:"-" form:"-"`
	Status string    `json:"status" form:"status"`
}

func (s *Service) listProducts(ctx handler.Context, _ struct{}) handler.Response {
	products, err := s.products.ListOwnProducts(ctx, auth.IdentityFromContext(ctx))
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(products)
}

func (s *Service) createProduct(ctx handler.Context, in catalog.ProductInput) handler.Response {
	p, err := s.products.CreateProduct(ctx, auth.IdentityFromContext(ctx), in)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(p, handler.WithJSONStatus(http.StatusCreated))
}

func (s *Service) updateProduct(ctx handler.Context, req UpdateProductRequest) handler.Response {
	p, err := s.products.UpdateProduct(ctx, auth.IdentityFromContext(ctx), req.ID, req.ProductInput)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(p)
}

func (s *Service) deleteProduct(ctx handler.Context, req idRequest) handler.Response {
	if err := s.products.DeleteProduct(ctx, auth.IdentityFromContext(ctx), req.ID); err != nil {
		return handler.Error(err)
	}
	return handler.Empty()
}

func (s *Service) listLeads(ctx handler.Context, _ struct{}) handler.Response {
	manufacturerID, err := manufacturerOf(ctx)
	if err != nil {
		return handler.Error(err)
	}
	leads, err := s.leads.ListForManufacturer(ctx, manufacturerID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(leads)
}

func (s *Service) updateLead(ctx handler.Context, req UpdateLeadRequest) handler.Response {
	manufacturerID, err := manufacturerOf(ctx)
	if err != nil {
		return handler.Error(err)
	}
	l, err := s.leads.UpdateStatus(ctx, manufacturerID, req.ID, req.Status)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(l)
}

func manufacturerOf(ctx context.Context) (uuid.UUID, error) {
	id := auth.IdentityFromContext(ctx)
	if id == nil || id.Profile == nil || id.Profile.ManufacturerID == nil {
		return uuid.Nil, ErrNoManufacturer
	}
	return *id.Profile.ManufacturerID, nil
}
