package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/leadhub/pkg/pg"
	"github.com/dmitrymomot/leadhub/svc/catalog"
)

const productColumns = `p.id, p.manufacturer_id, COALESCE(m.name, ''), p.name, p.category, p.price::float8,
	p.quantity, COALESCE(p.location, ''), COALESCE(p.image, ''), p.rating::float8, p.created_at, p.updated_at`

const productFrom = ` FROM products p LEFT JOIN manufacturers m ON m.id = p.manufacturer_id`

const manufacturerColumns = `id, name, COALESCE(description, ''), COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(website, ''), COALESCE(location, ''), COALESCE(image, ''), COALESCE(employees, ''),
	COALESCE(founded, ''), certifications, rating::float8, total_products, created_at`

// Catalog implements catalog.Storage.
type Catalog struct {
	db DB
}

var _ catalog.Storage = (*Catalog)(nil)

func NewCatalog(db DB) *Catalog {
	return &Catalog{db: db}
}

func (r *Catalog) ListProducts(ctx context.Context, f catalog.Filter) ([]catalog.Product, error) {
	where, args := productFilter(f)
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s%s%s ORDER BY p.created_at DESC, p.id LIMIT $%d OFFSET $%d`,
		productColumns, productFrom, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

func (r *Catalog) CountProducts(ctx context.Context, f catalog.Filter) (int, error) {
	where, args := productFilter(f)
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*)`+productFrom+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *Catalog) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = $1`, id))
	if pg.IsNotFoundError(err) {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *Catalog) ListProductsByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]catalog.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+productFrom+` WHERE p.manufacturer_id = $1 ORDER BY p.created_at DESC, p.id`,
		manufacturerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list manufacturer products: %w", err)
	}
	return collectProducts(rows)
}

func (r *Catalog) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *Catalog) GetManufacturer(ctx context.Context, id uuid.UUID) (*catalog.Manufacturer, error) {
	var m catalog.Manufacturer
	err := r.db.QueryRow(ctx, `SELECT `+manufacturerColumns+` FROM manufacturers WHERE id = $1`, id).Scan(
		&m.ID, &m.Name, &m.Description, &m.Email, &m.Phone, &m.Website, &m.Location, &m.Image,
		&m.Employees, &m.Founded, &m.Certifications, &m.Rating, &m.TotalProducts, &m.CreatedAt,
	)
	if pg.IsNotFoundError(err) {
		return nil, catalog.ErrManufacturerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get manufacturer: %w", err)
	}
	return &m, nil
}

func (r *Catalog) CreateManufacturer(ctx context.Context, m *catalog.Manufacturer) error {
	certs := m.Certifications
	if certs == nil {
		certs = []string{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO manufacturers (id, name, description, email, phone, website, location, image,
			employees, founded, certifications, rating, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`,
		m.ID, m.Name, m.Description, m.Email, m.Phone, m.Website, m.Location, m.Image,
		m.Employees, m.Founded, certs, m.Rating, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create manufacturer: %w", err)
	}
	return nil
}

func (r *Catalog) CreateProduct(ctx context.Context, p *catalog.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (id, manufacturer_id, name, category, price, quantity, location, image, rating,
			created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.ManufacturerID, p.Name, p.Category, p.Price, p.Quantity, p.Location, p.Image, p.Rating,
		p.CreatedAt, p.UpdatedAt,
	)
	if pg.IsForeignKeyViolationError(err) {
		return catalog.ErrManufacturerNotFound
	}
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *Catalog) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET name = $2, category = $3, price = $4, quantity = $5, location = $6, image = $7,
			updated_at = $8
		 WHERE id = $1`,
		p.ID, p.Name, p.Category, p.Price, p.Quantity, p.Location, p.Image, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

func (r *Catalog) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// productFilter renders the WHERE clause for f with positional arguments
// starting at $1. Category and search are already normalised by the service.
func productFilter(f catalog.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Category != "" {
		add("lower(p.category) = lower($%d)", f.Category)
	}
	if f.Search != "" {
		add("(p.name ILIKE $%[1]d OR m.name ILIKE $%[1]d)", containsPattern(f.Search))
	}
	if f.Location != "" {
		add("p.location ILIKE $%d", containsPattern(f.Location))
	}
	if f.MinPrice != nil {
		add("p.price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("p.price <= $%d", *f.MaxPrice)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var (
		p              catalog.Product
		manufacturerID *uuid.UUID
	)
	if err := row.Scan(
		&p.ID, &manufacturerID, &p.ManufacturerName, &p.Name, &p.Category, &p.Price,
		&p.Quantity, &p.Location, &p.Image, &p.Rating, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if manufacturerID != nil {
		p.ManufacturerID = *manufacturerID
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]catalog.Product, error) {
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.Product, error) {
		p, err := scanProduct(row)
		if err != nil {
			return catalog.Product{}, err
		}
		return *p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	return products, nil
}
