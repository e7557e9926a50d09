package seed

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/maksline/marketfront/internal/hash"
	"github.com/maksline/marketfront/internal/models"
)

// EnsureAdmin creates the default admin account if none exists. The admin
// override login depends on it, so this runs unconditionally at startup.
func EnsureAdmin(db *gorm.DB) error {
	var admin models.User
	err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := hash.HashPassword("admin")
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		ID:           "admin1",
		Name:         "Admin User",
		Email:        "admin@example.com",
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
	}).Error
}

// Load installs the demo dataset: three shops in different onboarding
// states, a small catalog, order history and two automation rules.
// Idempotent; it bails out if any user besides the admin exists.
func Load(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("role <> ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := hash.HashPassword("password")
	if err != nil {
		return err
	}

	users := []models.User{
		{ID: "cust1", Name: "John Doe", Email: "john.doe@example.com", PasswordHash: hashed, Role: models.RoleCustomer},
		{ID: "cust2", Name: "Jane Smith", Email: "jane.smith@example.com", PasswordHash: hashed, Role: models.RoleCustomer},
		{ID: "shop1", Name: "Alice", Email: "alice@example.com", PasswordHash: hashed, Role: models.RoleShopkeeper, ShopID: "shopId1", CanAddProducts: true},
		{ID: "shop2", Name: "Bob", Email: "bob@example.com", PasswordHash: hashed, Role: models.RoleShopkeeper, ShopID: "shopId2", CanAddProducts: false},
		{ID: "shop3", Name: "Charlie", Email: "charlie@example.com", PasswordHash: hashed, Role: models.RoleShopkeeper, ShopID: "shopId3", CanAddProducts: false},
	}

	shops := []models.Shop{
		{ID: "shopId1", Name: "Alice's Gadgets", OwnerID: "shop1", Approved: true},
		{ID: "shopId2", Name: "Bob's Books", OwnerID: "shop2", Approved: true},
		{ID: "shopId3", Name: "Charlie's Crafts", OwnerID: "shop3", Approved: false},
	}

	categories := []models.Category{
		{ID: "cat1", Name: "Electronics"},
		{ID: "cat2", Name: "Books"},
		{ID: "cat3", Name: "Clothing"},
		{ID: "cat4", Name: "Home Goods"},
	}

	products := []models.Product{
		{
			ID: "prod1", Name: "Wireless Mouse", Price: decimal.RequireFromString("25.99"),
			ShopID: "shopId1", Category: "Electronics", Stock: 10,
			Options: []models.ProductOption{{Name: "Color", Values: []string{"Black", "White"}}},
		},
		{
			ID: "prod2", Name: "Ergonomic Keyboard", Price: decimal.RequireFromString("79.99"),
			ShopID: "shopId1", Category: "Electronics", Stock: 5,
		},
		{
			ID: "prod3", Name: "Sci-Fi Novel", Price: decimal.RequireFromString("15.00"),
			ShopID: "shopId2", Category: "Books", Stock: 0,
			Options: []models.ProductOption{{Name: "Format", Values: []string{"Paperback", "Hardcover"}}},
		},
		{
			ID: "prod4", Name: "Handmade Scarf", Price: decimal.RequireFromString("35.50"),
			ShopID: "shopId3", Category: "Clothing", Stock: 20,
			Options: []models.ProductOption{
				{Name: "Color", Values: []string{"Red", "Blue"}},
				{Name: "Material", Values: []string{"Wool", "Cotton"}},
			},
		},
		{
			ID: "prod5", Name: "Bluetooth Speaker", Price: decimal.RequireFromString("45.00"),
			ShopID: "shopId1", Category: "Electronics", Stock: 0, OnSale: true,
		},
	}

	orders := []models.Order{
		{
			ID: "order1", UserID: "cust1", ShopID: "shopId1",
			Items:  []models.OrderItem{{ProductID: "prod1", Name: "Wireless Mouse", Quantity: 1}},
			Total:  decimal.RequireFromString("25.99"),
			Status: models.StatusDelivered, Date: "2024-07-15", PaymentMethod: models.PaymentUPI,
		},
		{
			ID: "order2", UserID: "cust1", ShopID: "shopId2",
			Items:  []models.OrderItem{{ProductID: "prod3", Name: "Sci-Fi Novel", Quantity: 2}},
			Total:  decimal.RequireFromString("30.00"),
			Status: models.StatusShipped, Date: "2024-07-18", PaymentMethod: models.PaymentCOD,
		},
		{
			ID: "order3", UserID: "cust1", ShopID: "shopId1",
			Items: []models.OrderItem{
				{ProductID: "prod2", Name: "Ergonomic Keyboard", Quantity: 1},
				{ProductID: "prod5", Name: "Bluetooth Speaker", Quantity: 1},
			},
			Total:  decimal.RequireFromString("124.99"),
			Status: models.StatusProcessing, Date: "2024-07-20", PaymentMethod: models.PaymentUPI,
		},
	}

	rules := []models.AutomationRule{
		{ID: "auto1", Name: "Low Stock Alert", Trigger: models.TriggerStockBelow, Action: models.ActionEmailAdmin, Config: models.RuleConfig{Threshold: 5}},
		{ID: "auto2", Name: "New Shopkeeper Notification", Trigger: models.TriggerNewApplication, Action: models.ActionEmailAdmin},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, batch := range []interface{}{&users, &shops, &categories, &products, &orders, &rules} {
			if err := tx.Create(batch).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
