package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/leadhub/svc/lead"
)

type execRecorder struct {
	DB
	args []any
}

func (r *execRecorder) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	r.args = args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestNullIfEmpty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, nullIfEmpty(""))
	got := nullIfEmpty("+15551234567")
	require.NotNil(t, got)
	assert.Equal(t, "+15551234567", *got)
}

func TestLeadsCreateLeadOptionalColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		phone       string
		message     string
		wantPhone   *string
		wantMessage *string
	}{
		{
			name: "empty values are stored as null",
		},
		{
			name:        "present values are stored as text",
			phone:       "+15551234567",
			message:     "Need 500 units",
			wantPhone:   ptr("+15551234567"),
			wantMessage: ptr("Need 500 units"),
		},
		{
			name:      "only phone",
			phone:     "+15551234567",
			wantPhone: ptr("+15551234567"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := &execRecorder{}
			now := time.Now()
			err := NewLeads(db).CreateLead(context.Background(), &lead.Lead{
				ID:             uuid.New(),
				ManufacturerID: uuid.New(),
				BuyerName:      "Jane Buyer",
				BuyerEmail:     "jane@example.com",
				BuyerPhone:     tt.phone,
				Message:        tt.message,
				Status:         lead.StatusNew,
				CreatedAt:      now,
				UpdatedAt:      now,
			})
			require.NoError(t, err)
			require.Len(t, db.args, 10)

			phone, ok := db.args[5].(*string)
			require.True(t, ok)
			message, ok := db.args[6].(*string)
			require.True(t, ok)
			assert.Equal(t, tt.wantPhone, phone)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func ptr(s string) *string { return &s }
