package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/leadhub/pkg/cache"
	"github.com/dmitrymomot/leadhub/pkg/logger"
	"github.com/dmitrymomot/leadhub/pkg/sanitizer"
	"github.com/dmitrymomot/leadhub/pkg/validator"
	"github.com/dmitrymomot/leadhub/svc/auth"
)

const (
	maxNameLength     = 200
	maxCategoryLength = 100
	maxQuantityLength = 100
	maxLocationLength = 200
	maxImageLength    = 2048

	categoryCacheSize = 512
)

// Storage persists manufacturers and products. Single-row lookups return
// ErrProductNotFound or ErrManufacturerNotFound.
type Storage interface {
	ListProducts(ctx context.Context, f Filter) ([]Product, error)
	CountProducts(ctx context.Context, f Filter) (int, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProductsByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
	GetManufacturer(ctx context.Context, id uuid.UUID) (*Manufacturer, error)
	CreateManufacturer(ctx context.Context, m *Manufacturer) error
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	storage    Storage
	logger     *slog.Logger
	now        func() time.Time
	categories *cache.LRU[string, string] // raw name -> display name
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
		storage:    storage,
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
		categories: cache.New[string, string](categoryCacheSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeCategory title-cases a category name and collapses whitespace,
// so "home  &  garden" and "Home & Garden" are stored alike.
func (s *Service) NormalizeCategory(category string) string {
	return s.categories.GetOrCompute(category, titleCategory)
}

func titleCategory(category string) string {
	// Casers keep state between calls and cannot be shared across goroutines.
	return cases.Title(language.English).String(sanitizer.NormalizeWhitespace(strings.ToLower(category)))
}

// ListProducts returns one page of the public catalog, newest first.
func (s *Service) ListProducts(ctx context.Context, f Filter) (*Page, error) {
	f = s.normalizeFilter(f)

	items, err := s.storage.ListProducts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	total, err := s.storage.CountProducts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	return &Page{Items: items, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

func (s *Service) normalizeFilter(f Filter) Filter {
	f.Search = sanitizer.NormalizeWhitespace(sanitizer.SanitizeInput(f.Search))
	f.Location = sanitizer.NormalizeWhitespace(sanitizer.SanitizeInput(f.Location))
	if c := sanitizer.SanitizeInput(f.Category); c != "" && !strings.EqualFold(c, "all") {
		f.Category = s.NormalizeCategory(c)
	} else {
		f.Category = ""
	}

	switch {
	case f.Limit <= 0:
		f.Limit = DefaultPageSize
	case f.Limit > MaxPageSize:
		f.Limit = MaxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.storage.GetProduct(ctx, id)
}

// GetManufacturer returns the manufacturer with its products.
func (s *Service) GetManufacturer(ctx context.Context, id uuid.UUID) (*ManufacturerDetail, error) {
	m, err := s.storage.GetManufacturer(ctx, id)
	if err != nil {
		return nil, err
	}
	products, err := s.storage.ListProductsByManufacturer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list manufacturer products: %w", err)
	}
	if products == nil {
		products = []Product{}
	}
	return &ManufacturerDetail{Manufacturer: *m, Products: products}, nil
}

// Categories returns the distinct display categories in use, sorted.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	raw, err := s.storage.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		c = s.NormalizeCategory(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	slices.Sort(out)
	return out, nil
}

// ListOwnProducts lists the actor's products, including while the account
// awaits approval.
func (s *Service) ListOwnProducts(ctx context.Context, actor *auth.Identity) ([]Product, error) {
	if actor == nil || actor.Profile == nil || actor.Profile.ManufacturerID == nil {
		return nil, ErrForbidden
	}
	return s.storage.ListProductsByManufacturer(ctx, *actor.Profile.ManufacturerID)
}

func (s *Service) CreateProduct(ctx context.Context, actor *auth.Identity, in ProductInput) (*Product, error) {
	manufacturerID, err := managedManufacturer(actor)
	if err != nil {
		return nil, err
	}

	in = s.sanitizeInput(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := s.now()
	p := &Product{
		ID:             uuid.New(),
		ManufacturerID: manufacturerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	apply(p, in)

	if err := s.storage.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		logger.Component("catalog"),
		logger.ProductID(p.ID),
		logger.ManufacturerID(manufacturerID),
	)
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, actor *auth.Identity, id uuid.UUID, in ProductInput) (*Product, error) {
	p, err := s.ownedProduct(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	in = s.sanitizeInput(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	apply(p, in)
	p.UpdatedAt = s.now()

	if err := s.storage.UpdateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	if _, err := s.ownedProduct(ctx, actor, id); err != nil {
		return err
	}
	if err := s.storage.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted",
		logger.Component("catalog"),
		logger.ProductID(id),
	)
	return nil
}

// ImportManufacturer stores a manufacturer and its products without an
// acting user. Used by the seed command.
func (s *Service) ImportManufacturer(ctx context.Context, m Manufacturer, products []ProductInput) (*ManufacturerDetail, error) {
	m.Name = sanitizer.SanitizeInput(m.Name)
	m.Location = sanitizer.SanitizeInput(m.Location)
	m.Description = sanitizer.SanitizeInput(sanitizer.StripHTML(m.Description))
	if err := validator.Apply(
		validator.Required("name", m.Name),
		validator.MaxLen("name", m.Name, maxNameLength),
	); err != nil {
		return nil, err
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = s.now()

	if err := s.storage.CreateManufacturer(ctx, &m); err != nil {
		return nil, fmt.Errorf("failed to create manufacturer: %w", err)
	}

	out := &ManufacturerDetail{Manufacturer: m, Products: make([]Product, 0, len(products))}
	for _, in := range products {
		in = s.sanitizeInput(in)
		if err := validateInput(in); err != nil {
			return nil, fmt.Errorf("product %q: %w", in.Name, err)
		}
		now := s.now()
		p := &Product{ID: uuid.New(), ManufacturerID: m.ID, ManufacturerName: m.Name, CreatedAt: now, UpdatedAt: now}
		apply(p, in)
		if err := s.storage.CreateProduct(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to create product %q: %w", in.Name, err)
		}
		out.Products = append(out.Products, *p)
	}
	out.TotalProducts = len(out.Products)
	return out, nil
}

func (s *Service) ownedProduct(ctx context.Context, actor *auth.Identity, id uuid.UUID) (*Product, error) {
	manufacturerID, err := managedManufacturer(actor)
	if err != nil {
		return nil, err
	}
	p, err := s.storage.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ManufacturerID != manufacturerID {
		return nil, ErrForbidden
	}
	return p, nil
}

// managedManufacturer returns the manufacturer the actor may edit.
func managedManufacturer(actor *auth.Identity) (uuid.UUID, error) {
	if actor == nil || actor.Profile == nil || actor.Profile.ManufacturerID == nil {
		return uuid.Nil, ErrForbidden
	}
	if !actor.Profile.Approved {
		return uuid.Nil, ErrNotApproved
	}
	return *actor.Profile.ManufacturerID, nil
}

func (s *Service) sanitizeInput(in ProductInput) ProductInput {
	in.Name = sanitizer.SanitizeInput(in.Name)
	in.Location = sanitizer.SanitizeInput(in.Location)
	in.Quantity = sanitizer.SanitizeInput(in.Quantity)
	in.Image = sanitizer.SanitizeInput(in.Image)
	in.Category = s.NormalizeCategory(sanitizer.SanitizeInput(in.Category))
	return in
}

func validateInput(in ProductInput) error {
	return validator.Apply(
		validator.Required("name", in.Name),
		validator.MaxLen("name", in.Name, maxNameLength),
		validator.Required("category", in.Category),
		validator.MaxLen("category", in.Category, maxCategoryLength),
		validator.MinNum("price", in.Price, 0),
		validator.Required("quantity", in.Quantity),
		validator.MaxLen("quantity", in.Quantity, maxQuantityLength),
		validator.MaxLen("location", in.Location, maxLocationLength),
		validator.MaxLen("image", in.Image, maxImageLength),
	)
}

func apply(p *Product, in ProductInput) {
	p.Name = in.Name
	p.Category = in.Category
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.Location = in.Location
	p.Image = in.Image
}
