package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gestioplus/gestio-api/internal/api/metrics"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for stock items.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type createProductRequest struct {
	Name           string  `json:"name"            validate:"required"`
	Description    string  `json:"description"`
	Quantity       int     `json:"quantity"        validate:"gte=0"`
	Price          float64 `json:"price"           validate:"gte=0"`
	AlertThreshold *int    `json:"alert_threshold" validate:"omitempty,gte=0"`
	Category       string  `json:"category"`
}

type updateProductRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Quantity       *int     `json:"quantity"        validate:"omitempty,gte=0"`
	Price          *float64 `json:"price"           validate:"omitempty,gte=0"`
	AlertThreshold *int     `json:"alert_threshold" validate:"omitempty,gte=0"`
	Category       *string  `json:"category"`
}

// List returns all products in the caller's workspace.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Product
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	products, err := h.service.List(c.Request().Context(), claims.TenantSession)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ListLowStock returns products at or below their alert threshold. An
// optional ?threshold=N query switches to a flat cutoff.
//
// @Summary      List low-stock products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        threshold  query     int  false  "Flat quantity cutoff overriding per-product thresholds"
// @Success      200        {array}   domain.Product
// @Failure      400        {object}  map[string]string
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) ListLowStock(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var threshold *int
	if raw := c.QueryParam("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "threshold must be an integer")
		}
		threshold = &n
	}

	products, err := h.service.ListLowStock(c.Request().Context(), claims.TenantSession, threshold)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Create adds a product to the caller's workspace.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), claims.TenantSession, ports.CreateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Quantity:       req.Quantity,
		Price:          req.Price,
		AlertThreshold: req.AlertThreshold,
		Category:       req.Category,
	})
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("product", "create").Inc()
	return c.JSON(http.StatusCreated, product)
}

// Update applies a partial update to a product in the caller's workspace.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to update"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), claims.TenantSession, ports.UpdateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Quantity:       req.Quantity,
		Price:          req.Price,
		AlertThreshold: req.AlertThreshold,
		Category:       req.Category,
	})
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("product", "update").Inc()
	return c.JSON(http.StatusOK, product)
}

// Delete removes a product from the caller's workspace.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.TenantSession); err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("product", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "product deleted"})
}
