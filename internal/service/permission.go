package service

import (
	"fmt"

	"github.com/maksline/marketfront/internal/models"
)

type Action string

const (
	ActManageUsers       Action = "manage_users"
	ActApproveShops      Action = "approve_shops"
	ActManageCategories  Action = "manage_categories"
	ActManageProducts    Action = "manage_products"
	ActViewShopProducts  Action = "view_shop_products"
	ActViewShopOrders    Action = "view_shop_orders"
	ActViewAllOrders     Action = "view_all_orders"
	ActViewUserOrders    Action = "view_user_orders"
	ActUpdateOrderStatus Action = "update_order_status"
	ActManageAutomations Action = "manage_automations"
)

// Resource names what an action is aimed at: the shop a product or order
// belongs to, or the user whose data is being read. Zero value for
// admin-global actions.
type Resource struct {
	ShopID string
	UserID string
}

// Allowed is the permission gate: a pure function of the actor's role, the
// CanAddProducts flag and resource ownership. Every service mutation calls
// it before touching the store.
func Allowed(actor *models.User, action Action, res Resource) bool {
	if actor == nil {
		return false
	}

	switch actor.Role {
	case models.RoleAdmin:
		return true

	case models.RoleShopkeeper:
		switch action {
		case ActManageProducts:
			return actor.CanAddProducts && actor.ShopID != "" && actor.ShopID == res.ShopID
		case ActViewShopProducts, ActViewShopOrders, ActUpdateOrderStatus:
			return actor.ShopID != "" && actor.ShopID == res.ShopID
		case ActViewUserOrders:
			return actor.ID == res.UserID
		}
		return false

	case models.RoleCustomer:
		switch action {
		case ActViewUserOrders:
			return actor.ID == res.UserID
		}
		return false
	}

	return false
}

func requirePermission(actor *models.User, action Action, res Resource) error {
	if !Allowed(actor, action, res) {
		return fmt.Errorf("%w: %s", ErrPermission, action)
	}
	return nil
}
