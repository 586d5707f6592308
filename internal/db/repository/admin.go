package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/leadhub/pkg/pg"
	"github.com/dmitrymomot/leadhub/svc/admin"
	"github.com/dmitrymomot/leadhub/svc/auth"
)

const accountQuery = `SELECT pr.id, pr.user_id, pr.approved, pr.manufacturer_id, COALESCE(m.name, ''),
	COALESCE(m.email, u.email), COALESCE(m.location, ''), COALESCE(m.total_products, 0), pr.created_at
	FROM profiles pr
	JOIN users u ON u.id = pr.user_id
	LEFT JOIN manufacturers m ON m.id = pr.manufacturer_id`

// Admin implements admin.Storage.
type Admin struct {
	db DB
}

var _ admin.Storage = (*Admin)(nil)

func NewAdmin(db DB) *Admin {
	return &Admin{db: db}
}

func (r *Admin) CountManufacturerProfiles(ctx context.Context) (total, approved int, err error) {
	err = r.db.QueryRow(ctx,
		`SELECT count(*), count(*) FILTER (WHERE approved) FROM profiles WHERE role = $1`,
		auth.RoleManufacturer,
	).Scan(&total, &approved)
	if err != nil {
		return 0, 0, fmt.Errorf("count profiles: %w", err)
	}
	return total, approved, nil
}

func (r *Admin) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *Admin) CountLeads(ctx context.Context, since time.Time) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM leads WHERE created_at >= $1`, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

func (r *Admin) ListManufacturers(ctx context.Context, search string) ([]admin.ManufacturerAccount, error) {
	rows, err := r.db.Query(ctx,
		accountQuery+` WHERE pr.role = $1 AND ($2 = '' OR m.name ILIKE $3 OR u.email ILIKE $3)
		ORDER BY pr.created_at DESC, pr.id`,
		auth.RoleManufacturer, search, containsPattern(search),
	)
	if err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}
	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (admin.ManufacturerAccount, error) {
		a, err := scanAccount(row)
		if err != nil {
			return admin.ManufacturerAccount{}, err
		}
		return *a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan manufacturers: %w", err)
	}
	return accounts, nil
}

func (r *Admin) GetManufacturerAccount(ctx context.Context, profileID uuid.UUID) (*admin.ManufacturerAccount, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, accountQuery+` WHERE pr.id = $1 AND pr.role = $2`,
		profileID, auth.RoleManufacturer))
	if pg.IsNotFoundError(err) {
		return nil, admin.ErrManufacturerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get manufacturer account: %w", err)
	}
	return a, nil
}

func (r *Admin) SetApproved(ctx context.Context, profileIDs []uuid.UUID, approved bool) (int, error) {
	ids := make([]string, len(profileIDs))
	for i, id := range profileIDs {
		ids[i] = id.String()
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE profiles SET approved = $2, updated_at = now() WHERE id = ANY($1::uuid[]) AND role = $3`,
		ids, approved, auth.RoleManufacturer,
	)
	if err != nil {
		return 0, fmt.Errorf("set approved: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *Admin) InsertAuditLog(ctx context.Context, a admin.Action) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admin_audit_log (admin_user_id, action, target_table, target_id, old_values, new_values,
			ip_address, user_agent, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.AdminUserID, a.Action, a.TargetTable, a.TargetID, a.OldData, a.NewData, a.IP, a.UserAgent, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func scanAccount(row pgx.Row) (*admin.ManufacturerAccount, error) {
	var a admin.ManufacturerAccount
	if err := row.Scan(
		&a.ProfileID, &a.UserID, &a.Approved, &a.ManufacturerID, &a.Name,
		&a.Email, &a.Location, &a.TotalProducts, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
