package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/maksline/marketfront/internal/models"
)

func (r *GormRepo) GetShop(ctx context.Context, id string) (*models.Shop, error) {
	var shop models.Shop
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *GormRepo) CreateShop(ctx context.Context, shop *models.Shop) error {
	return r.DB.WithContext(ctx).Create(shop).Error
}

func (r *GormRepo) SaveShop(ctx context.Context, shop *models.Shop) error {
	return r.DB.WithContext(ctx).Save(shop).Error
}

func (r *GormRepo) ListShops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *GormRepo) DeleteShop(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Shop{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
