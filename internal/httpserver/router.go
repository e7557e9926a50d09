package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/maksline/marketfront/internal/repo"
)

type Deps struct {
	Repo      *repo.GormRepo
	JWTSecret []byte

	Auth    *AuthHandler
	Catalog *CatalogHandler
	Cart    *CartHandler
	Order   *OrderHandler
	Shop    *ShopHandler
	Admin   *AdminHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", d.Auth.Login)
	auth.POST("/login-as-admin", d.Auth.LoginAsAdmin)
	auth.POST("/signup/customer", d.Auth.SignupCustomer)
	auth.POST("/signup/shopkeeper", d.Auth.SignupShopkeeper)
	auth.POST("/password-reset", d.Auth.PasswordReset)

	// public storefront reads
	v1.GET("/categories", d.Catalog.Categories)
	v1.GET("/products", d.Catalog.Products)
	v1.GET("/products/:id", d.Catalog.Product)

	authed := v1.Group("", RequireAuth(d.Repo, d.JWTSecret))

	authed.GET("/cart", d.Cart.GetCart)
	authed.POST("/cart", d.Cart.AddToCart)
	authed.PATCH("/cart/:productID", d.Cart.UpdateQuantity)
	authed.DELETE("/cart/:productID", d.Cart.RemoveFromCart)

	authed.POST("/orders", d.Order.PlaceOrder)
	authed.GET("/orders", d.Order.MyOrders)
	authed.PATCH("/orders/:id/status", d.Order.UpdateStatus)

	// shopkeeper surfaces; ownership is enforced in the services
	authed.GET("/shops/:id", d.Shop.GetShop)
	authed.GET("/shops/:id/products", d.Catalog.ShopProducts)
	authed.GET("/shops/:id/orders", d.Order.ShopOrders)
	authed.POST("/products", d.Catalog.CreateProduct)
	authed.PATCH("/products/:id", d.Catalog.UpdateProduct)
	authed.DELETE("/products/:id", d.Catalog.DeleteProduct)

	admin := authed.Group("/admin", AdminOnly)
	admin.GET("/users", d.Admin.ListUsers)
	admin.PATCH("/users/:id/role", d.Admin.UpdateUserRole)
	admin.PATCH("/users/:id/permission", d.Admin.UpdateShopkeeperPermission)
	admin.DELETE("/users/:id", d.Admin.DeleteUser)

	admin.GET("/shops", d.Admin.ListShops)
	admin.POST("/shops/:id/approve", d.Admin.ApproveShop)
	admin.POST("/shops/:id/reject", d.Admin.RejectShop)

	admin.POST("/categories", d.Catalog.AddCategory)
	admin.PATCH("/categories/:id", d.Catalog.UpdateCategory)
	admin.DELETE("/categories/:id", d.Catalog.DeleteCategory)

	admin.GET("/orders", d.Order.AllOrders)

	admin.GET("/automations", d.Admin.ListAutomations)
	admin.POST("/automations", d.Admin.AddAutomation)
	admin.DELETE("/automations/:id", d.Admin.DeleteAutomation)
}
