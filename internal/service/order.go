package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maksline/marketfront/internal/events"
	"github.com/maksline/marketfront/internal/logging"
	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/repo"
)

var upiPattern = regexp.MustCompile(`^[A-Za-z0-9.\-_]{2,256}@[A-Za-z]{2,64}$`)

// ValidUpiID reports whether s looks like handle@bank. The HTTP layer
// validates this too; the service re-checks because the transport is not
// the trust boundary.
func ValidUpiID(s string) bool {
	return upiPattern.MatchString(s)
}

type OrderService struct {
	Repo       *repo.GormRepo
	Cart       *CartService
	Automation *Engine
	Producer   *events.Producer

	// ProcessingDelay simulates payment processing before the commit.
	// The order is all-or-nothing: cancelling the context during the
	// delay leaves no trace in the store.
	ProcessingDelay time.Duration
}

type stockDrop struct {
	product  *models.Product
	oldStock int
}

// Place converts the actor's cart into an order inside one transaction:
// items and total are snapshotted, stock is decremented and the cart is
// cleared together. ShopID comes from the first cart item; mixed-shop
// carts are not split.
func (s *OrderService) Place(ctx context.Context, actor *models.User, method models.PaymentMethod, upiID string) (*models.Order, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w: unauthenticated", ErrPermission)
	}
	switch method {
	case models.PaymentCOD:
		upiID = ""
	case models.PaymentUPI:
		if !ValidUpiID(upiID) {
			return nil, fmt.Errorf("%w: invalid upi id", ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, method)
	}

	lines, err := s.Cart.Items(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	if s.ProcessingDelay > 0 {
		select {
		case <-time.After(s.ProcessingDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	order := &models.Order{
		ID:            uuid.NewString(),
		UserID:        actor.ID,
		ShopID:        lines[0].Product.ShopID,
		Status:        models.StatusProcessing,
		Date:          time.Now().Format("2006-01-02"),
		PaymentMethod: method,
		UpiID:         upiID,
	}

	var drops []stockDrop
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		total := decimal.Zero
		for _, line := range lines {
			// re-read inside the transaction so price, name and stock
			// are consistent with what we commit
			product, err := tx.GetProduct(ctx, line.Product.ID)
			if err != nil {
				return notFound(err, "product")
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  line.Quantity,
			})
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))

			oldStock := product.Stock
			product.Stock -= int(line.Quantity)
			if product.Stock < 0 {
				product.Stock = 0
			}
			if err := tx.SaveProduct(ctx, product); err != nil {
				return err
			}
			if product.Stock != oldStock {
				drops = append(drops, stockDrop{product: product, oldStock: oldStock})
			}
		}

		order.Total = total
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		return tx.ClearCart(ctx, actor.ID)
	})
	if err != nil {
		return nil, err
	}

	// automation and events fire only for committed state
	for _, d := range drops {
		s.Automation.StockChanged(ctx, d.product, d.oldStock, d.product.Stock)
	}
	s.publishOrderEvent(ctx, "order_placed", order)
	return order, nil
}

// UpdateStatus overwrites the status with any member of the enum. Status
// flow is not forward-only; moving an order back to Processing is allowed.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *models.User, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if err := requirePermission(actor, ActUpdateOrderStatus, Resource{ShopID: order.ShopID}); err != nil {
		return nil, err
	}

	order.Status = status
	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publishOrderEvent(ctx, "order_status_updated", order)
	return order, nil
}

func (s *OrderService) ListAll(ctx context.Context, actor *models.User) ([]models.Order, error) {
	if err := requirePermission(actor, ActViewAllOrders, Resource{}); err != nil {
		return nil, err
	}
	return s.Repo.ListOrders(ctx)
}

func (s *OrderService) ListShop(ctx context.Context, actor *models.User, shopID string) ([]models.Order, error) {
	if err := requirePermission(actor, ActViewShopOrders, Resource{ShopID: shopID}); err != nil {
		return nil, err
	}
	return s.Repo.ListShopOrders(ctx, shopID)
}

func (s *OrderService) ListUser(ctx context.Context, actor *models.User, userID string) ([]models.Order, error) {
	if err := requirePermission(actor, ActViewUserOrders, Resource{UserID: userID}); err != nil {
		return nil, err
	}
	return s.Repo.ListUserOrders(ctx, userID)
}

func (s *OrderService) publishOrderEvent(ctx context.Context, kind string, order *models.Order) {
	event := map[string]interface{}{
		"type":     kind,
		"order_id": order.ID,
		"user_id":  order.UserID,
		"shop_id":  order.ShopID,
		"status":   order.Status,
		"total":    order.Total.String(),
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, order.ID, event); err != nil {
		logging.FromContext(ctx).Error("publish order event", "error", err)
	}
}
