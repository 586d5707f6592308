package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/pkg/binder"
	"github.com/dmitrymomot/leadhub/pkg/session"
	"github.com/dmitrymomot/leadhub/svc/auth"
)

// Authenticator is the part of auth.Service the password flow needs.
type Authenticator interface {
	SignUp(ctx context.Context, email, password, companyName string) (*auth.Identity, error)
	SignIn(ctx context.Context, email, password string) (*auth.Identity, error)
	SignOut(ctx context.Context, userID uuid.UUID)
}

type PasswordService struct {
	auth         Authenticator
	sessionMgr   *session.Manager
	errorHandler handler.ErrorHandler
}

func NewPasswordService(
	authenticator Authenticator,
	sessionMgr *session.Manager,
	errorHandler handler.ErrorHandler,
) *PasswordService {
	return &PasswordService{
		auth:         authenticator,
		sessionMgr:   sessionMgr,
		errorHandler: errorHandler,
	}
}

func (s *PasswordService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/signup", handler.Wrap(s.signUp,
		handler.WithBinders[SignUpRequest](binder.JSON(), binder.Form()),
		handler.WithErrorHandler[SignUpRequest](s.errorHandler),
	))
	r.Post("/signin", handler.Wrap(s.signIn,
		handler.WithBinders[SignInRequest](binder.JSON(), binder.Form()),
		handler.WithErrorHandler[SignInRequest](s.errorHandler),
	))
	r.Post("/signout", handler.Wrap(s.signOut,
		handler.WithErrorHandler[struct{}](s.errorHandler),
	))
	r.With(RequireIdentity).Get("/session", handler.Wrap(s.currentSession,
		handler.WithErrorHandler[struct{}](s.errorHandler),
	))

	return r
}

// SignUpRequest accepts JSON or form data.
type SignUpRequest struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	CompanyName string `json:"company_name" form:"company_name"`
}

func (s *PasswordService) signUp(ctx handler.Context, req SignUpRequest) handler.Response {
	id, err := s.auth.SignUp(ctx, req.Email, req.Password, req.CompanyName)
	if err != nil {
		return handler.Error(err)
	}

	if _, err := s.sessionMgr.Authenticate(ctx, ctx.ResponseWriter(), ctx.Request(), id.User.ID); err != nil {
		return handler.Error(err)
	}
	return handler.JSON(id, handler.WithJSONStatus(http.StatusCreated))
}

type SignInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (s *PasswordService) signIn(ctx handler.Context, req SignInRequest) handler.Response {
	id, err := s.auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Error(err)
	}

	if _, err := s.sessionMgr.Authenticate(ctx, ctx.ResponseWriter(), ctx.Request(), id.User.ID); err != nil {
		return handler.Error(err)
	}
	return handler.JSON(id)
}

func (s *PasswordService) signOut(ctx handler.Context, _ struct{}) handler.Response {
	if userID, ok := session.UserIDFromContext(ctx); ok {
		s.auth.SignOut(ctx, userID)
	}
	if err := s.sessionMgr.Destroy(ctx, ctx.ResponseWriter(), ctx.Request()); err != nil {
		return handler.Error(err)
	}
	return handler.Empty()
}

func (s *PasswordService) currentSession(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(auth.IdentityFromContext(ctx))
}
