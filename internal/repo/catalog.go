package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/maksline/marketfront/internal/models"
)

func (r *GormRepo) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Save(cat).Error
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListShopProducts(ctx context.Context, shopID string) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) DeleteShopProducts(ctx context.Context, shopID string) error {
	return r.DB.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Delete(&models.Product{}).Error
}

type ProductFilter struct {
	Category string
	OnSale   bool
	Query    string
}

// ListVisibleProducts is the customer read path: only products whose shop
// is approved, narrowed by the active filter. The text match is a plain
// LIKE; the elasticsearch index takes over when it is configured.
func (r *GormRepo) ListVisibleProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	q := r.visibleProducts(ctx)
	if f.Category != "" {
		q = q.Where("products.category = ?", f.Category)
	}
	if f.OnSale {
		q = q.Where("products.on_sale = ?", true)
	}
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(products.name) LIKE ? OR LOWER(products.category) LIKE ?", like, like)
	}

	var items []models.Product
	if err := q.Order("products.id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// VisibleProductsByIDs keeps search results honest: whatever the index
// returns is re-checked against shop approval before it reaches a customer.
func (r *GormRepo) VisibleProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.Product
	if err := r.visibleProducts(ctx).
		Where("products.id IN ?", ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) visibleProducts(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN shops ON shops.id = products.shop_id").
		Where("shops.approved = ?", true)
}
