// Package repository implements the service storage interfaces on
// PostgreSQL with pgx. Each repository maps pgx.ErrNoRows and constraint
// violations to the owning service's sentinel errors.
package repository
