package transport

import (
	"github.com/shopspring/decimal"

	"github.com/maksline/marketfront/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=customer shopkeeper admin"`
}

type SignupCustomerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignupShopkeeperRequest struct {
	OwnerName string `json:"owner_name" validate:"required"`
	ShopName  string `json:"shop_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type ProductRequest struct {
	Name     string                 `json:"name"      validate:"required"`
	Price    decimal.Decimal        `json:"price"`
	ShopID   string                 `json:"shop_id"`
	Category string                 `json:"category"`
	Stock    int                    `json:"stock"     validate:"gte=0"`
	Options  []models.ProductOption `json:"options"`
	OnSale   bool                   `json:"on_sale"`
	ImageURL string                 `json:"image_url"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type PlaceOrderRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cod upi"`
	UpiID         string `json:"upi_id"         validate:"omitempty,upi"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Processing Shipped Delivered"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer shopkeeper admin"`
}

type UpdatePermissionRequest struct {
	CanAddProducts bool `json:"can_add_products"`
}

type AutomationRequest struct {
	Name      string `json:"name"      validate:"required"`
	Trigger   string `json:"trigger"   validate:"required,oneof=stock_below new_application"`
	Action    string `json:"action"    validate:"required,oneof=email_admin"`
	Threshold int    `json:"threshold" validate:"gte=0"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
