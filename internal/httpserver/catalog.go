package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maksline/marketfront/internal/logging"
	"github.com/maksline/marketfront/internal/repo"
	"github.com/maksline/marketfront/internal/service"
	"github.com/maksline/marketfront/internal/transport"
)

type CatalogHandler struct {
	Svc *service.CatalogService
}

func (h *CatalogHandler) Categories(c echo.Context) error {
	cats, err := h.Svc.Categories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHandler) AddCategory(c echo.Context) error {
	var req transport.CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cat, err := h.Svc.AddCategory(c.Request().Context(), actor(c), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	var req transport.CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cat, err := h.Svc.UpdateCategory(c.Request().Context(), actor(c), c.Param("id"), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	if err := h.Svc.DeleteCategory(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

// Products serves the storefront: approved shops only, optional
// category/on-sale/search narrowing via query params.
func (h *CatalogHandler) Products(c echo.Context) error {
	filter := repo.ProductFilter{
		Category: c.QueryParam("category"),
		OnSale:   c.QueryParam("on_sale") == "true",
		Query:    c.QueryParam("q"),
	}

	items, err := h.Svc.Products(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) Product(c echo.Context) error {
	product, err := h.Svc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) ShopProducts(c echo.Context) error {
	items, err := h.Svc.ShopProducts(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := productInput(req)
	if in.ShopID == "" && actor(c) != nil {
		in.ShopID = actor(c).ShopID
	}

	product, err := h.Svc.AddProduct(ctx, actor(c), in)
	if err != nil {
		l.Warn("create_product_error", "error", err)
		return httpError(err)
	}

	l.Info("create_product_success", "product", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_product")

	var req transport.ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.Svc.UpdateProduct(ctx, actor(c), c.Param("id"), productInput(req))
	if err != nil {
		l.Warn("update_product_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	if err := h.Svc.DeleteProduct(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

func productInput(req transport.ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:     req.Name,
		Price:    req.Price,
		ShopID:   req.ShopID,
		Category: req.Category,
		Stock:    req.Stock,
		Options:  req.Options,
		OnSale:   req.OnSale,
		ImageURL: req.ImageURL,
	}
}
