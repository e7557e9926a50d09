package repo

import (
	"context"

	"github.com/maksline/marketfront/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Save(order).Error
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	return r.findOrders(ctx, "", "")
}

func (r *GormRepo) ListShopOrders(ctx context.Context, shopID string) ([]models.Order, error) {
	return r.findOrders(ctx, "shop_id = ?", shopID)
}

func (r *GormRepo) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return r.findOrders(ctx, "user_id = ?", userID)
}

func (r *GormRepo) findOrders(ctx context.Context, cond, arg string) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Preload("Items").Order("date DESC, id DESC")
	if cond != "" {
		q = q.Where(cond, arg)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
