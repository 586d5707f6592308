package seed_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/leadhub/internal/seed"
	"github.com/dmitrymomot/leadhub/svc/catalog"
)

type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) ImportManufacturer(ctx context.Context, mf catalog.Manufacturer, products []catalog.ProductInput) (*catalog.ManufacturerDetail, error) {
	args := m.Called(ctx, mf, products)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ManufacturerDetail), args.Error(1)
}

const document = `
manufacturers:
  - name: Acme Steel
    location: Pittsburgh, PA
    certifications: [ISO 9001]
    products:
      - name: Steel Beam
        category: Metals
        price: 120.5
        quantity: 100 units
      - name: Rebar
        category: Metals
        price: 8
        quantity: 1 ton
        location: Cleveland, OH
  - name: Pacific Plastics
`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("document", func(t *testing.T) {
		t.Parallel()
		f, err := seed.Parse(strings.NewReader(document))
		require.NoError(t, err)
		require.Len(t, f.Manufacturers, 2)
		assert.Equal(t, []string{"ISO 9001"}, f.Manufacturers[0].Certifications)
		require.Len(t, f.Manufacturers[0].Products, 2)
		assert.InDelta(t, 120.5, f.Manufacturers[0].Products[0].Price, 0.001)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		_, err := seed.Parse(strings.NewReader(""))
		assert.ErrorIs(t, err, seed.ErrEmptyFile)

		_, err = seed.Parse(strings.NewReader("manufacturers: []\n"))
		assert.ErrorIs(t, err, seed.ErrEmptyFile)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := seed.Parse(strings.NewReader("manufacturers:\n  - name: A\n    colour: red\n"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	f, err := seed.Parse(strings.NewReader(document))
	require.NoError(t, err)

	t.Run("imports in order", func(t *testing.T) {
		t.Parallel()
		imp := &MockImporter{}
		imp.On("ImportManufacturer", mock.Anything,
			mock.MatchedBy(func(m catalog.Manufacturer) bool { return m.Name == "Acme Steel" }),
			mock.MatchedBy(func(p []catalog.ProductInput) bool {
				return len(p) == 2 && p[0].Location == "Pittsburgh, PA" && p[1].Location == "Cleveland, OH"
			}),
		).Return(&catalog.ManufacturerDetail{
			Manufacturer: catalog.Manufacturer{ID: uuid.New()},
			Products:     make([]catalog.Product, 2),
		}, nil).Once()
		imp.On("ImportManufacturer", mock.Anything,
			mock.MatchedBy(func(m catalog.Manufacturer) bool { return m.Name == "Pacific Plastics" }),
			[]catalog.ProductInput{},
		).Return(&catalog.ManufacturerDetail{Manufacturer: catalog.Manufacturer{ID: uuid.New()}}, nil).Once()

		res, err := seed.Load(context.Background(), imp, f, nil)
		require.NoError(t, err)
		assert.Equal(t, seed.Result{Manufacturers: 2, Products: 2}, res)
		imp.AssertExpectations(t)
	})

	t.Run("stops on failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		imp := &MockImporter{}
		imp.On("ImportManufacturer", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom).Once()

		res, err := seed.Load(context.Background(), imp, f, nil)
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "Acme Steel")
		assert.Zero(t, res)
		imp.AssertNumberOfCalls(t, "ImportManufacturer", 1)
	})
}

func TestParse_SampleFile(t *testing.T) {
	t.Parallel()

	fh, err := os.Open("testdata/catalog.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { _ = fh.Close() })

	f, err := seed.Parse(fh)
	require.NoError(t, err)
	require.Len(t, f.Manufacturers, 2)
	assert.Equal(t, "1962", f.Manufacturers[0].Founded)
	require.NotNil(t, f.Manufacturers[0].Rating)
	assert.Len(t, f.Manufacturers[0].Products, 2)
	assert.Equal(t, "Tacoma, WA", f.Manufacturers[1].Products[0].Location)
}
