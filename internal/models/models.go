package models

import (
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleShopkeeper Role = "shopkeeper"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleShopkeeper, RoleAdmin:
		return true
	}
	return false
}

type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCOD PaymentMethod = "cod"
	PaymentUPI PaymentMethod = "upi"
)

// User covers all three roles. ShopID and CanAddProducts are only
// meaningful for shopkeepers. Email is stored lowercased.
type User struct {
	ID             string `gorm:"size:36;primaryKey"       json:"id"`
	Name           string `gorm:"not null"                 json:"name"`
	Email          string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash   string `gorm:"not null"                 json:"-"`
	Role           Role   `gorm:"size:16;not null;index"   json:"role"`
	ShopID         string `gorm:"size:36;index"            json:"shop_id,omitempty"`
	CanAddProducts bool   `gorm:"default:false"            json:"can_add_products"`
}

type Shop struct {
	ID       string `gorm:"size:36;primaryKey"   json:"id"`
	Name     string `gorm:"not null"             json:"name"`
	OwnerID  string `gorm:"size:36;index"        json:"owner_id"`
	Approved bool   `gorm:"default:false"        json:"approved"`
}

type Category struct {
	ID   string `gorm:"size:36;primaryKey"   json:"id"`
	Name string `gorm:"not null"             json:"name"`
}

type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Product.Category holds the category name, not its id. Renaming or
// deleting a category leaves existing products untouched.
type Product struct {
	ID       string          `gorm:"size:36;primaryKey"             json:"id"`
	Name     string          `gorm:"not null"                       json:"name"`
	Price    decimal.Decimal `gorm:"type:decimal(16,2);not null"    json:"price"`
	ShopID   string          `gorm:"size:36;index;not null"         json:"shop_id"`
	Category string          `gorm:"size:255"                       json:"category"`
	Stock    int             `gorm:"not null;default:0"             json:"stock"`
	Options  []ProductOption `gorm:"serializer:json"                json:"options"`
	OnSale   bool            `gorm:"default:false"                  json:"on_sale"`
	ImageURL string          `json:"image_url,omitempty"`
}

type CartItem struct {
	ID        uint   `gorm:"primaryKey"                  json:"id"`
	UserID    string `gorm:"size:36;index;not null"      json:"user_id"`
	ProductID string `gorm:"size:36;not null"            json:"product_id"`
	Quantity  uint   `gorm:"default:1;check:quantity>0"  json:"quantity"`
}

// OrderItem is a snapshot taken at placement time. Name is copied from
// the product so later catalog edits do not rewrite order history.
type OrderItem struct {
	ID        uint   `gorm:"primaryKey"              json:"id"`
	OrderID   string `gorm:"size:36;index;not null"  json:"order_id"`
	ProductID string `gorm:"size:36;not null"        json:"product_id"`
	Name      string `gorm:"not null"                json:"name"`
	Quantity  uint   `gorm:"not null"                json:"quantity"`
}

type Order struct {
	ID            string          `gorm:"size:36;primaryKey"           json:"id"`
	UserID        string          `gorm:"size:36;index;not null"       json:"user_id"`
	ShopID        string          `gorm:"size:36;index;not null"       json:"shop_id"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID"           json:"products"`
	Total         decimal.Decimal `gorm:"type:decimal(16,2);not null"  json:"total"`
	Status        OrderStatus     `gorm:"size:16;not null"             json:"status"`
	Date          string          `gorm:"size:10;not null"             json:"date"`
	PaymentMethod PaymentMethod   `gorm:"size:8;not null"              json:"payment_method"`
	UpiID         string          `json:"upi_id,omitempty"`
}

type RuleTrigger string

const (
	TriggerStockBelow     RuleTrigger = "stock_below"
	TriggerNewApplication RuleTrigger = "new_application"
)

type RuleAction string

const ActionEmailAdmin RuleAction = "email_admin"

type RuleConfig struct {
	Threshold int `json:"threshold,omitempty"`
}

type AutomationRule struct {
	ID      string      `gorm:"size:36;primaryKey"  json:"id"`
	Name    string      `gorm:"not null"            json:"name"`
	Trigger RuleTrigger `gorm:"size:32;not null;column:trigger_type"  json:"trigger"`
	Action  RuleAction  `gorm:"size:32;not null"    json:"action"`
	Config  RuleConfig  `gorm:"serializer:json"     json:"config"`
}
