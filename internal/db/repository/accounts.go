package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/leadhub/pkg/pg"
	"github.com/dmitrymomot/leadhub/svc/auth"
)

// Accounts implements auth.Storage.
type Accounts struct {
	db DB
}

var _ auth.Storage = (*Accounts)(nil)

func NewAccounts(db DB) *Accounts {
	return &Accounts{db: db}
}

func (r *Accounts) CreateAccount(ctx context.Context, reg auth.Registration) error {
	err := pg.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO users (id, email, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)`,
			reg.User.ID, reg.User.Email, reg.PasswordHash, reg.User.CreatedAt,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO manufacturers (id, name, email, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)`,
			reg.ManufacturerID, reg.CompanyName, reg.User.Email, reg.User.CreatedAt,
		); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO profiles (id, user_id, role, approved, manufacturer_id, created_at, updated_at)
			 VALUES ($1, $2, $3, FALSE, $4, $5, $5)`,
			reg.ProfileID, reg.User.ID, auth.RoleManufacturer, reg.ManufacturerID, reg.User.CreatedAt,
		)
		return err
	})
	if pg.IsDuplicateKeyError(err) {
		return auth.ErrEmailAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *Accounts) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return r.getUser(ctx, `SELECT id, email, created_at FROM users WHERE id = $1`, id)
}

func (r *Accounts) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.getUser(ctx, `SELECT id, email, created_at FROM users WHERE email = $1`, email)
}

func (r *Accounts) getUser(ctx context.Context, query string, arg any) (*auth.User, error) {
	var u auth.User
	err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if pg.IsNotFoundError(err) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *Accounts) GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	var hash []byte
	err := r.db.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, userID).Scan(&hash)
	if pg.IsNotFoundError(err) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get password hash: %w", err)
	}
	return hash, nil
}

func (r *Accounts) GetProfile(ctx context.Context, userID uuid.UUID) (*auth.Profile, error) {
	var p auth.Profile
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, role, approved, manufacturer_id, created_at FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.Role, &p.Approved, &p.ManufacturerID, &p.CreatedAt)
	if pg.IsNotFoundError(err) {
		return nil, auth.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (r *Accounts) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admin_users WHERE user_id = $1)`, userID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	return ok, nil
}

func (r *Accounts) CreateAdmin(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO admin_users (user_id, role) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		userID, role,
	)
	if pg.IsForeignKeyViolationError(err) {
		return false, auth.ErrUserNotFound
	}
	if err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
