package admin

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/leadhub/svc/auth"
)

// Audit log actions.
const (
	ActionApproveManufacturer = "approve_manufacturer"
	ActionRejectManufacturer  = "reject_manufacturer"
	ActionBulkApprove         = "bulk_approve_manufacturers"
)

const profilesTable = "profiles"

type DashboardStats struct {
	TotalManufacturers    int `json:"total_manufacturers"`
	ApprovedManufacturers int `json:"approved_manufacturers"`
	PendingApprovals      int `json:"pending_approvals"`
	TotalProducts         int `json:"total_products"`
	TotalLeads            int `json:"total_leads"`
	NewLeadsToday         int `json:"new_leads_today"`
}

// ManufacturerAccount is a manufacturer profile joined with its company.
type ManufacturerAccount struct {
	ProfileID      uuid.UUID  `json:"profile_id"`
	UserID         uuid.UUID  `json:"user_id"`
	Approved       bool       `json:"approved"`
	ManufacturerID *uuid.UUID `json:"manufacturer_id,omitempty"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Location       string     `json:"location,omitempty"`
	TotalProducts  int        `json:"total_products"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Actor is the administrator performing a request.
type Actor struct {
	Identity  *auth.Identity
	IP        string
	UserAgent string
}

// Action is one audit log entry.
type Action struct {
	AdminUserID uuid.UUID
	Action      string
	TargetTable string
	TargetID    *uuid.UUID
	OldData     map[string]any
	NewData     map[string]any
	IP          string
	UserAgent   string
	CreatedAt   time.Time
}
