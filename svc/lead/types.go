package lead

import (
	"time"

	"github.com/google/uuid"
)

// Lead statuses.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusConverted = "converted"
	StatusClosed    = "closed"
)

// Statuses lists every valid status in workflow order.
var Statuses = []string{StatusNew, StatusContacted, StatusConverted, StatusClosed}

// AnonymousIdentifier is the rate-limit key for inquiries without an email.
const AnonymousIdentifier = "anonymous"

// Inquiry is a buyer's raw contact request. When ProductID is set the
// manufacturer is taken from the product.
type Inquiry struct {
	ProductID      uuid.UUID `json:"product_id" form:"product_id"`
	ManufacturerID uuid.UUID `json:"manufacturer_id" form:"manufacturer_id"`
	Name           string    `json:"name" form:"name"`
	Email          string    `json:"email" form:"email"`
	Phone          string    `json:"phone" form:"phone"`
	Message        string    `json:"message" form:"message"`
}

type Lead struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      *uuid.UUID `json:"product_id,omitempty"`
	ProductName    string     `json:"product_name,omitempty"`
	ManufacturerID uuid.UUID  `json:"manufacturer_id"`
	BuyerName      string     `json:"buyer_name"`
	BuyerEmail     string     `json:"buyer_email"`
	BuyerPhone     string     `json:"buyer_phone,omitempty"`
	Message        string     `json:"message,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
