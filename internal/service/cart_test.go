package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/maksline/marketfront/internal/service"
)

func TestCartAddIncrementsExistingLine(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	user := seedCustomer(t, r, "cust1", "c@example.com")
	seedShop(t, r, "shopId1", "shop1", true)
	seedProduct(t, r, "prod1", "shopId1", "25.99", 10)

	ctx := context.Background()
	require.NoError(t, svc.Add(ctx, user.ID, "prod1"))
	require.NoError(t, svc.Add(ctx, user.ID, "prod1"))

	lines, err := svc.Items(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, uint(2), lines[0].Quantity)
}

func TestCartAddBlocksOutOfStock(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	user := seedCustomer(t, r, "cust1", "c@example.com")
	seedShop(t, r, "shopId2", "shop2", true)
	seedProduct(t, r, "prod3", "shopId2", "15.00", 0)

	err := svc.Add(context.Background(), user.ID, "prod3")
	require.ErrorIs(t, err, service.ErrValidation)

	lines, err := svc.Items(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestCartTotalMatchesSumRegardlessOfOrder(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	a := seedCustomer(t, r, "custA", "a@example.com")
	b := seedCustomer(t, r, "custB", "b@example.com")
	seedShop(t, r, "shopId1", "shop1", true)
	seedProduct(t, r, "prod1", "shopId1", "25.99", 10)
	seedProduct(t, r, "prod2", "shopId1", "79.99", 10)
	seedProduct(t, r, "prod5", "shopId1", "45.00", 10)

	ctx := context.Background()

	// same multiset reached through different operation orders
	require.NoError(t, svc.Add(ctx, a.ID, "prod1"))
	require.NoError(t, svc.Add(ctx, a.ID, "prod1"))
	require.NoError(t, svc.Add(ctx, a.ID, "prod2"))
	require.NoError(t, svc.Add(ctx, a.ID, "prod5"))
	require.NoError(t, svc.Remove(ctx, a.ID, "prod5"))

	require.NoError(t, svc.Add(ctx, b.ID, "prod2"))
	require.NoError(t, svc.Add(ctx, b.ID, "prod1"))
	require.NoError(t, svc.UpdateQuantity(ctx, b.ID, "prod1", 2))

	want := decimal.RequireFromString("131.97") // 2*25.99 + 79.99
	totalA, err := svc.Total(ctx, a.ID)
	require.NoError(t, err)
	totalB, err := svc.Total(ctx, b.ID)
	require.NoError(t, err)

	require.True(t, want.Equal(totalA), "got %s", totalA)
	require.True(t, totalA.Equal(totalB))
}

func TestCartUpdateQuantityZeroRemoves(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	user := seedCustomer(t, r, "cust1", "c@example.com")
	seedShop(t, r, "shopId1", "shop1", true)
	seedProduct(t, r, "prod1", "shopId1", "25.99", 10)

	ctx := context.Background()
	require.NoError(t, svc.Add(ctx, user.ID, "prod1"))
	require.NoError(t, svc.UpdateQuantity(ctx, user.ID, "prod1", 0))

	lines, err := svc.Items(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, lines)

	total, err := svc.Total(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, total.IsZero())
}

func TestCartKeepsItemWhenStockDropsLater(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	user := seedCustomer(t, r, "cust1", "c@example.com")
	seedShop(t, r, "shopId1", "shop1", true)
	product := seedProduct(t, r, "prod1", "shopId1", "25.99", 1)

	ctx := context.Background()
	require.NoError(t, svc.Add(ctx, user.ID, "prod1"))

	// stock is only checked when the item enters the cart
	product.Stock = 0
	require.NoError(t, r.SaveProduct(ctx, product))

	lines, err := svc.Items(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
}
