package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/repo"
	"github.com/maksline/marketfront/internal/service"
)

func TestAddCategoryEnforcesUniqueNameCaseInsensitive(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CatalogService{Repo: r}
	admin := seedAdmin(t, r)

	ctx := context.Background()
	_, err := svc.AddCategory(ctx, admin, "Electronics")
	require.NoError(t, err)

	_, err = svc.AddCategory(ctx, admin, "electronics")
	require.ErrorIs(t, err, service.ErrConflict)
}

func TestUpdateCategoryDoesNotRewriteProducts(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CatalogService{Repo: r}
	admin := seedAdmin(t, r)
	seedShop(t, r, "shopId1", "shop1", true)
	cat := seedCategory(t, r, "cat1", "Electronics")

	ctx := context.Background()
	product := seedProduct(t, r, "prod1", "shopId1", "25.99", 10)
	product.Category = "Electronics"
	require.NoError(t, r.SaveProduct(ctx, product))

	_, err := svc.UpdateCategory(ctx, admin, cat.ID, "Gadgets")
	require.NoError(t, err)

	// products carry a name snapshot; the rename leaves them behind
	stored, err := r.GetProduct(ctx, "prod1")
	require.NoError(t, err)
	require.Equal(t, "Electronics", stored.Category)
}

func TestUpdateCategorySelfRenameKeepsName(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CatalogService{Repo: r}
	admin := seedAdmin(t, r)
	cat := seedCategory(t, r, "cat1", "Electronics")

	// renaming a category to its own name is not a conflict
	updated, err := svc.UpdateCategory(context.Background(), admin, cat.ID, "Electronics")
	require.NoError(t, err)
	require.Equal(t, "Electronics", updated.Name)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CatalogService{Repo: r}
	admin := seedAdmin(t, r)

	err := svc.DeleteCategory(context.Background(), admin, "missing")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCategoryMutationsRequireAdmin(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CatalogService{Repo: r}
	customer := seedCustomer(t, r, "cust1", "c@example.com")

	_, err := svc.AddCategory(context.Background(), customer, "Electronics")
	require.ErrorIs(t, err, service.ErrPermission)
}

func TestAddProductValidation(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CatalogService{Repo: r}
	admin := seedAdmin(t, r)
	seedShop(t, r, "shopId1", "shop1", true)
	seedCategory(t, r, "cat1", "Electronics")

	ctx := context.Background()

	_, err := svc.AddProduct(ctx, admin, service.ProductInput{ShopID: "shopId1", Price: decimal.New(1, 0)})
	require.ErrorIs(t, err, service.ErrValidation, "name required")

	_, err = svc.AddProduct(ctx, admin, service.ProductInput{
		Name: "Mouse", ShopID: "shopId1", Price: decimal.RequireFromString("-1"),
	})
	require.ErrorIs(t, err, service.ErrValidation, "negative price")

	_, err = svc.AddProduct(ctx, admin, service.ProductInput{
		Name: "Mouse", ShopID: "shopId1", Price: decimal.New(1, 0), Stock: -1,
	})
	require.ErrorIs(t, err, service.ErrValidation, "negative stock")

	_, err = svc.AddProduct(ctx, admin, service.ProductInput{
		Name: "Mouse", ShopID: "shopId1", Price: decimal.New(1, 0), Category: "Nope",
	})
	require.ErrorIs(t, err, service.ErrNotFound, "unknown category")

	product, err := svc.AddProduct(ctx, admin, service.ProductInput{
		Name: "Mouse", ShopID: "shopId1", Price: decimal.RequireFromString("25.99"),
		Category: "Electronics", Stock: 10,
		Options: []models.ProductOption{{Name: "Color", Values: []string{"Black", "White"}}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, product.ID)
	require.Len(t, product.Options, 1)
}

func TestShopkeeperProductPermissions(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CatalogService{Repo: r}
	pending, _ := seedShop(t, r, "shopId3", "shop3", false) // CanAddProducts=false
	approved, _ := seedShop(t, r, "shopId1", "shop1", true)

	ctx := context.Background()
	in := service.ProductInput{Name: "Scarf", ShopID: "shopId3", Price: decimal.New(1, 0), Stock: 1}

	_, err := svc.AddProduct(ctx, pending, in)
	require.ErrorIs(t, err, service.ErrPermission, "no CanAddProducts yet")

	_, err = svc.AddProduct(ctx, approved, in)
	require.ErrorIs(t, err, service.ErrPermission, "wrong shop")

	in.ShopID = "shopId1"
	product, err := svc.AddProduct(ctx, approved, in)
	require.NoError(t, err)

	err = svc.DeleteProduct(ctx, pending, product.ID)
	require.ErrorIs(t, err, service.ErrPermission)
	require.NoError(t, svc.DeleteProduct(ctx, approved, product.ID))
}

func TestUpdateProductAppliesAddLevelValidation(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CatalogService{Repo: r}
	admin := seedAdmin(t, r)
	seedShop(t, r, "shopId1", "shop1", true)
	seedProduct(t, r, "prod1", "shopId1", "25.99", 10)

	ctx := context.Background()
	_, err := svc.UpdateProduct(ctx, admin, "prod1", service.ProductInput{
		Name: "Mouse", Price: decimal.RequireFromString("-5"),
	})
	require.ErrorIs(t, err, service.ErrValidation)

	updated, err := svc.UpdateProduct(ctx, admin, "prod1", service.ProductInput{
		Name: "Wireless Mouse v2", Price: decimal.RequireFromString("29.99"), Stock: 8, OnSale: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Wireless Mouse v2", updated.Name)
	require.True(t, updated.OnSale)
	require.Equal(t, 8, updated.Stock)

	_, err = svc.UpdateProduct(ctx, admin, "missing", service.ProductInput{Name: "x"})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateProductStockEdgeTriggersAutomation(t *testing.T) {
	r := newTestRepo(t)
	notifier := &captureNotifier{}
	svc := &service.CatalogService{Repo: r, Automation: newEngine(r, notifier)}
	admin := seedAdmin(t, r)
	seedShop(t, r, "shopId1", "shop1", true)
	seedProduct(t, r, "prod1", "shopId1", "25.99", 10)

	rule := &models.AutomationRule{
		ID: "auto1", Name: "Low Stock Alert",
		Trigger: models.TriggerStockBelow, Action: models.ActionEmailAdmin,
		Config: models.RuleConfig{Threshold: 5},
	}
	require.NoError(t, r.CreateRule(context.Background(), rule))

	ctx := context.Background()
	set := func(stock int) {
		_, err := svc.UpdateProduct(ctx, admin, "prod1", service.ProductInput{
			Name: "prod1", Price: decimal.RequireFromString("25.99"), Stock: stock,
		})
		require.NoError(t, err)
	}

	set(7) // above threshold, no fire
	require.Equal(t, 0, notifier.count())
	set(3) // crossing fires once
	require.Equal(t, 1, notifier.count())
	set(2) // still below, no re-fire
	require.Equal(t, 1, notifier.count())
	set(9) // recover
	set(4) // crossing again fires again
	require.Equal(t, 2, notifier.count())
}

func TestVisibleProductsHideUnapprovedShops(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CatalogService{Repo: r}
	seedShop(t, r, "shopId1", "shop1", true)
	seedShop(t, r, "shopId3", "shop3", false)
	seedProduct(t, r, "prod1", "shopId1", "25.99", 10)
	seedProduct(t, r, "prod4", "shopId3", "35.50", 20)

	items, err := svc.Products(context.Background(), repo.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "prod1", items[0].ID)
}

func TestVisibleProductsFilters(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CatalogService{Repo: r}
	seedShop(t, r, "shopId1", "shop1", true)
	seedCategory(t, r, "cat1", "Electronics")
	seedCategory(t, r, "cat2", "Books")

	ctx := context.Background()
	mouse := seedProduct(t, r, "prod1", "shopId1", "25.99", 10)
	mouse.Category = "Electronics"
	require.NoError(t, r.SaveProduct(ctx, mouse))

	speaker := seedProduct(t, r, "prod5", "shopId1", "45.00", 3)
	speaker.Category = "Electronics"
	speaker.OnSale = true
	require.NoError(t, r.SaveProduct(ctx, speaker))

	novel := seedProduct(t, r, "prod3", "shopId1", "15.00", 1)
	novel.Category = "Books"
	novel.Name = "Sci-Fi Novel"
	require.NoError(t, r.SaveProduct(ctx, novel))

	byCategory, err := svc.Products(ctx, repo.ProductFilter{Category: "Electronics"})
	require.NoError(t, err)
	require.Len(t, byCategory, 2)

	onSale, err := svc.Products(ctx, repo.ProductFilter{OnSale: true})
	require.NoError(t, err)
	require.Len(t, onSale, 1)
	require.Equal(t, "prod5", onSale[0].ID)

	byQuery, err := svc.Products(ctx, repo.ProductFilter{Query: "sci-fi"})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	require.Equal(t, "prod3", byQuery[0].ID)
}
