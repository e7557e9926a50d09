package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/maksline/marketfront/internal/events"
	"github.com/maksline/marketfront/internal/logging"
	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/repo"
	"github.com/maksline/marketfront/internal/search"
	"github.com/maksline/marketfront/internal/util"
)

type CatalogService struct {
	Repo       *repo.GormRepo
	Automation *Engine
	Index      *search.Index
	Producer   *events.Producer
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) AddCategory(ctx context.Context, actor *models.User, name string) (*models.Category, error) {
	if err := requirePermission(actor, ActManageCategories, Resource{}); err != nil {
		return nil, err
	}
	if err := s.checkCategoryNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	cat := &models.Category{ID: uuid.NewString(), Name: name}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// UpdateCategory renames the category record only. Products reference
// categories by name snapshot and are deliberately left alone.
func (s *CatalogService) UpdateCategory(ctx context.Context, actor *models.User, id, name string) (*models.Category, error) {
	if err := requirePermission(actor, ActManageCategories, Resource{}); err != nil {
		return nil, err
	}
	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, notFound(err, "category")
	}
	if err := s.checkCategoryNameFree(ctx, name, cat.ID); err != nil {
		return nil, err
	}

	cat.Name = name
	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, actor *models.User, id string) error {
	if err := requirePermission(actor, ActManageCategories, Resource{}); err != nil {
		return err
	}
	return notFound(s.Repo.DeleteCategory(ctx, id), "category")
}

func (s *CatalogService) checkCategoryNameFree(ctx context.Context, name, selfID string) error {
	if name == "" {
		return fmt.Errorf("%w: category name required", ErrValidation)
	}
	existing, err := s.Repo.GetCategoryByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: category %q already exists", ErrConflict, name)
	}
	return nil
}

// Products is the customer-facing read path: only approved shops, narrowed
// by category, on-sale flag and free-text query. When the elasticsearch
// index is configured the query goes through it; results are still
// re-checked against shop approval.
func (s *CatalogService) Products(ctx context.Context, f repo.ProductFilter) ([]models.Product, error) {
	if f.Query == "" || s.Index == nil {
		return s.Repo.ListVisibleProducts(ctx, f)
	}

	from, size := util.Calculate(1, 100)
	ids, err := s.Index.Search(ctx, f.Query, from, size)
	if err != nil {
		logging.FromContext(ctx).Warn("search index unavailable, falling back", "error", err)
		return s.Repo.ListVisibleProducts(ctx, f)
	}

	items, err := s.Repo.VisibleProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	filtered := items[:0]
	for _, p := range items {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.OnSale && !p.OnSale {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	return product, nil
}

func (s *CatalogService) ShopProducts(ctx context.Context, actor *models.User, shopID string) ([]models.Product, error) {
	if err := requirePermission(actor, ActViewShopProducts, Resource{ShopID: shopID}); err != nil {
		return nil, err
	}
	return s.Repo.ListShopProducts(ctx, shopID)
}

type ProductInput struct {
	Name     string
	Price    decimal.Decimal
	ShopID   string
	Category string
	Stock    int
	Options  []models.ProductOption
	OnSale   bool
	ImageURL string
}

func (s *CatalogService) AddProduct(ctx context.Context, actor *models.User, in ProductInput) (*models.Product, error) {
	if err := requirePermission(actor, ActManageProducts, Resource{ShopID: in.ShopID}); err != nil {
		return nil, err
	}
	if err := s.validateProductInput(ctx, in); err != nil {
		return nil, err
	}
	if _, err := s.Repo.GetShop(ctx, in.ShopID); err != nil {
		return nil, notFound(err, "shop")
	}

	product := &models.Product{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Price:    in.Price,
		ShopID:   in.ShopID,
		Category: in.Category,
		Stock:    in.Stock,
		Options:  in.Options,
		OnSale:   in.OnSale,
		ImageURL: in.ImageURL,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.indexProduct(ctx, product)
	s.publishProductEvent(ctx, "product_created", product.ID, product.Name)
	return product, nil
}

// UpdateProduct applies add-level validation and routes stock changes
// through the automation engine. The product cannot change shops.
func (s *CatalogService) UpdateProduct(ctx context.Context, actor *models.User, id string, in ProductInput) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	if err := requirePermission(actor, ActManageProducts, Resource{ShopID: product.ShopID}); err != nil {
		return nil, err
	}
	in.ShopID = product.ShopID
	if err := s.validateProductInput(ctx, in); err != nil {
		return nil, err
	}

	oldStock := product.Stock
	product.Name = in.Name
	product.Price = in.Price
	product.Category = in.Category
	product.Stock = in.Stock
	product.Options = in.Options
	product.OnSale = in.OnSale
	product.ImageURL = in.ImageURL

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	if oldStock != product.Stock {
		s.Automation.StockChanged(ctx, product, oldStock, product.Stock)
	}
	s.indexProduct(ctx, product)
	s.publishProductEvent(ctx, "product_updated", product.ID, product.Name)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actor *models.User, id string) error {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return notFound(err, "product")
	}
	if err := requirePermission(actor, ActManageProducts, Resource{ShopID: product.ShopID}); err != nil {
		return err
	}
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return notFound(err, "product")
	}

	if err := s.Index.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("deindex product", "product", id, "error", err)
	}
	s.publishProductEvent(ctx, "product_deleted", id, product.Name)
	return nil
}

func (s *CatalogService) validateProductInput(ctx context.Context, in ProductInput) error {
	if in.Name == "" {
		return fmt.Errorf("%w: product name required", ErrValidation)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}
	if in.Category != "" {
		if _, err := s.Repo.GetCategoryByName(ctx, in.Category); err != nil {
			return notFound(err, "category")
		}
	}
	return nil
}

func (s *CatalogService) indexProduct(ctx context.Context, product *models.Product) {
	if err := s.Index.IndexProduct(ctx, product); err != nil {
		logging.FromContext(ctx).Warn("index product", "product", product.ID, "error", err)
	}
}

func (s *CatalogService) publishProductEvent(ctx context.Context, kind, id, name string) {
	event := map[string]interface{}{
		"type":       kind,
		"product_id": id,
		"name":       strings.TrimSpace(name),
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, id, event); err != nil {
		logging.FromContext(ctx).Error("publish product event", "error", err)
	}
}
