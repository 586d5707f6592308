package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/leadhub/pkg/pg"
	"github.com/dmitrymomot/leadhub/svc/lead"
)

const leadColumns = `l.id, l.product_id, COALESCE(p.name, ''), l.manufacturer_id, l.buyer_name, l.buyer_email,
	COALESCE(l.buyer_phone, ''), COALESCE(l.message, ''), l.status, l.created_at, l.updated_at`

const leadFrom = ` FROM leads l LEFT JOIN products p ON p.id = l.product_id`

// Leads implements lead.Storage.
type Leads struct {
	db DB
}

var _ lead.Storage = (*Leads)(nil)

func NewLeads(db DB) *Leads {
	return &Leads{db: db}
}

func (r *Leads) ProductManufacturer(ctx context.Context, productID uuid.UUID) (uuid.UUID, error) {
	var manufacturerID *uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT manufacturer_id FROM products WHERE id = $1`, productID).Scan(&manufacturerID)
	if pg.IsNotFoundError(err) || (err == nil && manufacturerID == nil) {
		return uuid.Nil, lead.ErrProductNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get product manufacturer: %w", err)
	}
	return *manufacturerID, nil
}

func (r *Leads) CreateLead(ctx context.Context, l *lead.Lead) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO leads (id, product_id, manufacturer_id, buyer_name, buyer_email, buyer_phone, message, status,
			created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		l.ID, l.ProductID, l.ManufacturerID, l.BuyerName, l.BuyerEmail, nullIfEmpty(l.BuyerPhone), nullIfEmpty(l.Message), l.Status,
		l.CreatedAt, l.UpdatedAt,
	)
	if pg.IsForeignKeyViolationError(err) {
		return lead.ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

func (r *Leads) GetLead(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	l, err := scanLead(r.db.QueryRow(ctx, `SELECT `+leadColumns+leadFrom+` WHERE l.id = $1`, id))
	if pg.IsNotFoundError(err) {
		return nil, lead.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

func (r *Leads) ListByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]lead.Lead, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+leadColumns+leadFrom+` WHERE l.manufacturer_id = $1 ORDER BY l.created_at DESC, l.id`,
		manufacturerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	leads, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (lead.Lead, error) {
		l, err := scanLead(row)
		if err != nil {
			return lead.Lead{}, err
		}
		return *l, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan leads: %w", err)
	}
	return leads, nil
}

func (r *Leads) UpdateStatus(ctx context.Context, id uuid.UUID, status string, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE leads SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return lead.ErrLeadNotFound
	}
	return nil
}

func scanLead(row pgx.Row) (*lead.Lead, error) {
	var (
		l              lead.Lead
		manufacturerID *uuid.UUID
	)
	if err := row.Scan(
		&l.ID, &l.ProductID, &l.ProductName, &manufacturerID, &l.BuyerName, &l.BuyerEmail,
		&l.BuyerPhone, &l.Message, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if manufacturerID != nil {
		l.ManufacturerID = *manufacturerID
	}
	return &l, nil
}
