package cart

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/pkg/cache"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartOperations(t *testing.T) {
	c := New("2026-10-18")

	c.Add("dosa", "regular", 1)
	c.Add("dosa", "regular", 1)
	c.Add("tea", "", 3)
	assert.Equal(t, 2, c.Items["dosa:regular"])
	assert.Equal(t, 5, c.TotalQuantity())

	c.Set("tea", "", 0)
	_, ok := c.Items["tea"]
	assert.False(t, ok)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, domain.CartLine{MenuItemID: "dosa", VariantID: "regular", Quantity: 2}, lines[0])

	c.Remove("dosa", "regular")
	assert.True(t, c.IsEmpty())
}

func TestDecodeIgnoresOtherDate(t *testing.T) {
	c := New("2026-10-18")
	c.Add("dosa", "", 2)
	raw, err := c.Encode()
	require.NoError(t, err)

	same, err := Decode(raw, "2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, 2, same.Items["dosa"])

	other, err := Decode(raw, "2026-10-19")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
	assert.Equal(t, "2026-10-19", other.Date)

	_, err = Decode("{not json", "2026-10-18")
	assert.Error(t, err)
}

func TestCartService(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(cache.NewMemoryCache())

	saved, err := svc.SaveCart(ctx, "u1", domain.SaveCartRequest{
		Date: "2026-10-18",
		Items: []domain.CartLine{
			{MenuItemID: "dosa", VariantID: "regular", Quantity: 1},
			{MenuItemID: "dosa", VariantID: "regular", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, 2, saved.Items[0].Quantity)

	got, err := svc.GetCart(ctx, "u1", "2026-10-19")
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	// clearing another date keeps the stored cart
	require.NoError(t, svc.ClearCart(ctx, "u1", "2026-10-19"))
	got, err = svc.GetCart(ctx, "u1", "2026-10-18")
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	require.NoError(t, svc.ClearCart(ctx, "u1", "2026-10-18"))
	got, err = svc.GetCart(ctx, "u1", "2026-10-18")
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	_, err = svc.SaveCart(ctx, "u1", domain.SaveCartRequest{
		Date:  "2026-10-18",
		Items: []domain.CartLine{{MenuItemID: "dosa", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}
