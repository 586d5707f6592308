package catalog

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Manufacturer struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Website        string    `json:"website,omitempty"`
	Location       string    `json:"location,omitempty"`
	Image          string    `json:"image,omitempty"`
	Employees      string    `json:"employees,omitempty"`
	Founded        string    `json:"founded,omitempty"`
	Certifications []string  `json:"certifications,omitempty"`
	Rating         *float64  `json:"rating,omitempty"`
	TotalProducts  int       `json:"total_products"`
	CreatedAt      time.Time `json:"created_at"`
}

type Product struct {
	ID               uuid.UUID `json:"id"`
	ManufacturerID   uuid.UUID `json:"manufacturer_id"`
	ManufacturerName string    `json:"manufacturer_name,omitempty"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Price            float64   `json:"price"`
	Quantity         string    `json:"quantity"`
	Location         string    `json:"location,omitempty"`
	Image            string    `json:"image,omitempty"`
	Rating           *float64  `json:"rating,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ManufacturerDetail is a manufacturer with its listed products.
type ManufacturerDetail struct {
	Manufacturer
	Products []Product `json:"products"`
}

// Filter narrows the public product listing. Search matches product or
// manufacturer names case-insensitively. Empty fields do not filter.
type Filter struct {
	Category string   `query:"category"`
	Search   string   `query:"q"`
	Location string   `query:"location"`
	MinPrice *float64 `query:"min_price"`
	MaxPrice *float64 `query:"max_price"`
	Limit    int      `query:"limit"`
	Offset   int      `query:"offset"`
}

// Page is one slice of a product listing.
type Page struct {
	Items  []Product `json:"items"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// ProductInput carries the editable product fields.
type ProductInput struct {
	Name     string  `json:"name" form:"name"`
	Category string  `json:"category" form:"category"`
	Price    float64 `json:"price" form:"price"`
	Quantity string  `json:"quantity" form:"quantity"`
	Location string  `json:"location" form:"location"`
	Image    string  `json:"image" form:"image"`
}
