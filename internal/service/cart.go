package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/repo"
)

// CartService keeps one cart per user. Stock is checked only when an item
// first enters the cart; later stock changes surface at checkout, not here.
type CartService struct {
	Repo *repo.GormRepo
}

// CartLine joins a cart row with its live product for display and totals.
type CartLine struct {
	Product  models.Product `json:"product"`
	Quantity uint           `json:"quantity"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (s *CartService) Items(ctx context.Context, userID string) ([]CartLine, error) {
	rows, err := s.Repo.ListCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(rows))
	for _, row := range rows {
		product, err := s.Repo.GetProduct(ctx, row.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// product was deleted from the catalog; drop the stale row
				_ = s.Repo.DeleteCartItem(ctx, userID, row.ProductID)
				continue
			}
			return nil, err
		}
		lines = append(lines, CartLine{Product: *product, Quantity: row.Quantity})
	}
	return lines, nil
}

// Add puts one unit of the product in the cart, or bumps the quantity if
// it is already there. Out-of-stock products are blocked at this door and
// nowhere else.
func (s *CartService) Add(ctx context.Context, userID, productID string) error {
	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return notFound(err, "product")
	}
	if product.Stock <= 0 {
		return fmt.Errorf("%w: product out of stock", ErrValidation)
	}

	item, err := s.Repo.GetCartItem(ctx, userID, productID)
	if err == nil {
		item.Quantity++
		return s.Repo.SaveCartItem(ctx, item)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.Repo.CreateCartItem(ctx, &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
	})
}

// UpdateQuantity sets the quantity; anything below 1 removes the item.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return s.Remove(ctx, userID, productID)
	}

	item, err := s.Repo.GetCartItem(ctx, userID, productID)
	if err != nil {
		return notFound(err, "cart item")
	}
	item.Quantity = uint(quantity)
	return s.Repo.SaveCartItem(ctx, item)
}

func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	return notFound(s.Repo.DeleteCartItem(ctx, userID, productID), "cart item")
}

// Total is computed on demand from live prices, never cached.
func (s *CartService) Total(ctx context.Context, userID string) (decimal.Decimal, error) {
	lines, err := s.Items(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}
	return total, nil
}
