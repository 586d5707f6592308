package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/pkg/binder"
	"github.com/dmitrymomot/leadhub/pkg/clientip"
	"github.com/dmitrymomot/leadhub/svc/admin"
	"github.com/dmitrymomot/leadhub/svc/auth"
)

// Dashboard is the part of admin.Service the HTTP layer uses.
type Dashboard interface {
	Stats(ctx context.Context, actor admin.Actor) (*admin.DashboardStats, error)
	ListManufacturers(ctx context.Context, actor admin.Actor, search string) ([]admin.ManufacturerAccount, error)
	Approve(ctx context.Context, actor admin.Actor, profileID uuid.UUID) (*admin.ManufacturerAccount, error)
	Reject(ctx context.Context, actor admin.Actor, profileID uuid.UUID) (*admin.ManufacturerAccount, error)
	BulkApprove(ctx context.Context, actor admin.Actor, profileIDs []uuid.UUID) (int, error)
}

// Service expects an admin auth.Identity in the request context; mount it
// behind account.RequireAdmin.
type Service struct {
	dashboard    Dashboard
	errorHandler handler.ErrorHandler
}

func NewService(dashboard Dashboard, errorHandler handler.ErrorHandler) *Service {
	return &Service{dashboard: dashboard, errorHandler: errorHandler}
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/stats", handler.Wrap(s.stats,
		handler.WithErrorHandler[struct{}](s.errorHandler),
	))
	r.Get("/manufacturers", handler.Wrap(s.listManufacturers,
		handler.WithBinders[ListRequest](binder.Query()),
		handler.WithErrorHandler[ListRequest](s.errorHandler),
	))
	r.Post("/manufacturers/approve", handler.Wrap(s.bulkApprove,
		handler.WithBinders[BulkApproveRequest](binder.JSON(), binder.Form()),
		handler.WithErrorHandler[BulkApproveRequest](s.errorHandler),
	))
	r.Post("/manufacturers/{id}/approve", handler.Wrap(s.approve,
		handler.WithBinders[idRequest](binder.Path()),
		handler.WithErrorHandler[idRequest](s.errorHandler),
	))
	r.Post("/manufacturers/{id}/reject", handler.Wrap(s.reject,
		handler.WithBinders[idRequest](binder.Path()),
		handler.WithErrorHandler[idRequest](s.errorHandler),
	))

	return r
}

type idRequest struct {
	ID uuid.UUID `path:"id"`
}

type ListRequest struct {
	Search string `query:"q"`
}

type BulkApproveRequest struct {
	IDs []uuid.UUID `json:"ids" form:"ids"`
}

// actor describes the requesting admin for the audit log.
func actor(ctx handler.Context) admin.Actor {
	r := ctx.Request()
	ip := clientip.GetIPFromContext(r.Context())
	if ip == "" {
		ip = clientip.GetIP(r)
	}
	return admin.Actor{
		Identity:  auth.IdentityFromContext(r.Context()),
		IP:        ip,
		UserAgent: r.UserAgent(),
	}
}

func (s *Service) stats(ctx handler.Context, _ struct{}) handler.Response {
	stats, err := s.dashboard.Stats(ctx, actor(ctx))
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(stats)
}

func (s *Service) listManufacturers(ctx handler.Context, req ListRequest) handler.Response {
	accounts, err := s.dashboard.ListManufacturers(ctx, actor(ctx), req.Search)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(accounts)
}

func (s *Service) approve(ctx handler.Context, req idRequest) handler.Response {
	account, err := s.dashboard.Approve(ctx, actor(ctx), req.ID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(account)
}

func (s *Service) reject(ctx handler.Context, req idRequest) handler.Response {
	account, err := s.dashboard.Reject(ctx, actor(ctx), req.ID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(account)
}

func (s *Service) bulkApprove(ctx handler.Context, req BulkApproveRequest) handler.Response {
	n, err := s.dashboard.BulkApprove(ctx, actor(ctx), req.IDs)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(map[string]int{"approved": n})
}
