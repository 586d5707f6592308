// Package seed loads demo catalog data from YAML files.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/leadhub/pkg/logger"
	"github.com/dmitrymomot/leadhub/svc/catalog"
)

var ErrEmptyFile = errors.New("seed file has no manufacturers")

// File is the seed document.
//
//	manufacturers:
//	  - name: Acme Steel
//	    location: Pittsburgh, PA
//	    certifications: [ISO 9001]
//	    products:
//	      - name: Steel Beam
//	        category: Metals
//	        price: 120.5
//	        quantity: 100 units
type File struct {
	Manufacturers []Manufacturer `yaml:"manufacturers"`
}

type Manufacturer struct {
	Name           string    `yaml:"name"`
	Description    string    `yaml:"description"`
	Email          string    `yaml:"email"`
	Phone          string    `yaml:"phone"`
	Website        string    `yaml:"website"`
	Location       string    `yaml:"location"`
	Image          string    `yaml:"image"`
	Employees      string    `yaml:"employees"`
	Founded        string    `yaml:"founded"`
	Certifications []string  `yaml:"certifications"`
	Rating         *float64  `yaml:"rating"`
	Products       []Product `yaml:"products"`
}

type Product struct {
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Price    float64 `yaml:"price"`
	Quantity string  `yaml:"quantity"`
	Location string  `yaml:"location"`
	Image    string  `yaml:"image"`
}

// Importer stores one manufacturer with its products.
type Importer interface {
	ImportManufacturer(ctx context.Context, m catalog.Manufacturer, products []catalog.ProductInput) (*catalog.ManufacturerDetail, error)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	if len(f.Manufacturers) == 0 {
		return nil, ErrEmptyFile
	}
	return &f, nil
}

// Result counts what Load stored.
type Result struct {
	Manufacturers int
	Products      int
}

// Load imports every manufacturer in order and stops at the first failure.
func Load(ctx context.Context, importer Importer, f *File, log *slog.Logger) (Result, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	var res Result
	for _, m := range f.Manufacturers {
		detail, err := importer.ImportManufacturer(ctx, m.toCatalog(), m.productInputs())
		if err != nil {
			return res, fmt.Errorf("manufacturer %q: %w", m.Name, err)
		}
		res.Manufacturers++
		res.Products += len(detail.Products)

		log.InfoContext(ctx, "manufacturer imported",
			logger.Component("seed"),
			logger.ManufacturerID(detail.ID),
			slog.Int("products", len(detail.Products)),
		)
	}
	return res, nil
}

func (m Manufacturer) toCatalog() catalog.Manufacturer {
	return catalog.Manufacturer{
		Name:           m.Name,
		Description:    m.Description,
		Email:          m.Email,
		Phone:          m.Phone,
		Website:        m.Website,
		Location:       m.Location,
		Image:          m.Image,
		Employees:      m.Employees,
		Founded:        m.Founded,
		Certifications: m.Certifications,
		Rating:         m.Rating,
	}
}

func (m Manufacturer) productInputs() []catalog.ProductInput {
	out := make([]catalog.ProductInput, 0, len(m.Products))
	for _, p := range m.Products {
		location := p.Location
		if location == "" {
			location = m.Location
		}
		out = append(out, catalog.ProductInput{
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price,
			Quantity: p.Quantity,
			Location: location,
			Image:    p.Image,
		})
	}
	return out
}
