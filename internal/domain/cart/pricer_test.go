//go:build unit

package cart_test

import (
	"testing"

	"storefront/internal/domain/cart"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, productID uuid.UUID, qty int32) cart.Line {
	t.Helper()
	line, err := cart.NewLine(productID, cart.NewVariant("M", "black"), qty)
	require.NoError(t, err)
	return line
}

func testProduct(id uuid.UUID, priceCents int64, stock int32) cart.Product {
	return cart.Product{
		ID:         id,
		Name:       "Test Product",
		Brand:      "Acme",
		Slug:       "test-product",
		ImageURL:   "https://img.example/p.jpg",
		PriceCents: priceCents,
		Stock:      stock,
		Active:     true,
	}
}

func TestPrice(t *testing.T) {
	t.Run("subtotal is the exact sum of line totals", func(t *testing.T) {
		idA, idB := uuid.New(), uuid.New()
		catalog := map[uuid.UUID]cart.Product{
			idA: testProduct(idA, 1999, 10),
			idB: testProduct(idB, 350, 10),
		}
		lines := []cart.Line{
			mustLine(t, idA, 3),
			mustLine(t, idB, 2),
		}

		pc := cart.Price(lines, catalog)

		require.Len(t, pc.Lines, 2)
		assert.Equal(t, int64(3*1999), pc.Lines[0].TotalCents)
		assert.Equal(t, int64(2*350), pc.Lines[1].TotalCents)
		assert.Equal(t, int64(3*1999+2*350), pc.SubtotalCents)
		assert.Empty(t, pc.Removed)
	})

	t.Run("prices come from the catalog snapshot only", func(t *testing.T) {
		id := uuid.New()
		catalog := map[uuid.UUID]cart.Product{id: testProduct(id, 500, 5)}

		pc := cart.Price([]cart.Line{mustLine(t, id, 1)}, catalog)

		require.Len(t, pc.Lines, 1)
		assert.Equal(t, int64(500), pc.Lines[0].UnitPriceCents)
	})

	t.Run("repricing identical inputs never drifts", func(t *testing.T) {
		idA, idB, idC := uuid.New(), uuid.New(), uuid.New()
		catalog := map[uuid.UUID]cart.Product{
			idA: testProduct(idA, 1234, 100),
			idB: testProduct(idB, 56789, 100),
			idC: testProduct(idC, 1, 100),
		}
		lines := []cart.Line{
			mustLine(t, idA, 7),
			mustLine(t, idB, 3),
			mustLine(t, idC, 99),
		}

		first := cart.Price(lines, catalog)
		for range 100 {
			again := cart.Price(lines, catalog)
			require.Empty(t, cmp.Diff(first, again))
		}
	})

	t.Run("quantity clamped to available stock", func(t *testing.T) {
		id := uuid.New()
		catalog := map[uuid.UUID]cart.Product{id: testProduct(id, 1000, 2)}

		pc := cart.Price([]cart.Line{mustLine(t, id, 5)}, catalog)

		require.Len(t, pc.Lines, 1)
		assert.Equal(t, int32(2), pc.Lines[0].Quantity)
		assert.True(t, pc.Lines[0].Clamped)
		assert.Equal(t, int64(2000), pc.SubtotalCents)
	})

	t.Run("quantity within stock is not marked clamped", func(t *testing.T) {
		id := uuid.New()
		catalog := map[uuid.UUID]cart.Product{id: testProduct(id, 1000, 5)}

		pc := cart.Price([]cart.Line{mustLine(t, id, 5)}, catalog)

		require.Len(t, pc.Lines, 1)
		assert.False(t, pc.Lines[0].Clamped)
	})

	t.Run("removal reasons", func(t *testing.T) {
		present := uuid.New()
		missing := uuid.New()
		inactive := uuid.New()
		outOfStock := uuid.New()

		inactiveProduct := testProduct(inactive, 100, 5)
		inactiveProduct.Active = false

		catalog := map[uuid.UUID]cart.Product{
			present:    testProduct(present, 100, 5),
			inactive:   inactiveProduct,
			outOfStock: testProduct(outOfStock, 100, 0),
		}
		lines := []cart.Line{
			mustLine(t, present, 1),
			mustLine(t, missing, 1),
			mustLine(t, inactive, 1),
			mustLine(t, outOfStock, 1),
		}

		pc := cart.Price(lines, catalog)

		require.Len(t, pc.Lines, 1)
		require.Len(t, pc.Removed, 3)
		assert.Equal(t, cart.RemovedLine{ProductID: missing, Reason: cart.RemovalNotFound}, pc.Removed[0])
		assert.Equal(t, cart.RemovedLine{ProductID: inactive, Reason: cart.RemovalInactive}, pc.Removed[1])
		assert.Equal(t, cart.RemovedLine{ProductID: outOfStock, Reason: cart.RemovalOutOfStock}, pc.Removed[2])
		assert.Equal(t, int64(100), pc.SubtotalCents)
	})

	t.Run("all lines removed yields an empty priced cart", func(t *testing.T) {
		pc := cart.Price([]cart.Line{mustLine(t, uuid.New(), 1)}, nil)

		assert.True(t, pc.IsEmpty())
		assert.Zero(t, pc.SubtotalCents)
		assert.Len(t, pc.Removed, 1)
	})

	t.Run("variant selection carried onto the priced line", func(t *testing.T) {
		id := uuid.New()
		catalog := map[uuid.UUID]cart.Product{id: testProduct(id, 100, 5)}
		line, err := cart.NewLine(id, cart.NewVariant(" L ", " navy "), 1)
		require.NoError(t, err)

		pc := cart.Price([]cart.Line{line}, catalog)

		require.Len(t, pc.Lines, 1)
		assert.Equal(t, "L", pc.Lines[0].Size)
		assert.Equal(t, "navy", pc.Lines[0].Color)
	})
}

func TestNewLine(t *testing.T) {
	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := cart.NewLine(uuid.New(), cart.Variant{}, 0)
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := cart.NewLine(uuid.New(), cart.Variant{}, -3)
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	})
}
