package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gestioplus/gestio-api/internal/api/metrics"
	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

// TransactionHandler handles HTTP requests for financial movements.
type TransactionHandler struct {
	service ports.TransactionService
}

func NewTransactionHandler(service ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

type createTransactionRequest struct {
	Amount      float64 `json:"amount"      validate:"required"`
	Type        string  `json:"type"        validate:"required,oneof=income expense"`
	Category    string  `json:"category"    validate:"required"`
	Date        string  `json:"date"        validate:"omitempty,datetime=2006-01-02"`
	Description string  `json:"description"`
}

type updateTransactionRequest struct {
	Amount      *float64 `json:"amount"`
	Type        *string  `json:"type"        validate:"omitempty,oneof=income expense"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"        validate:"omitempty,datetime=2006-01-02"`
	Description *string  `json:"description"`
}

// List returns all tenant transactions, newest first.
//
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Transaction
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	transactions, err := h.service.List(c.Request().Context(), claims.TenantSession)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactions)
}

// Recent returns at most six transactions, newest first.
//
// @Summary      List recent transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Transaction
// @Router       /api/transactions/recent [get]
func (h *TransactionHandler) Recent(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	transactions, err := h.service.Recent(c.Request().Context(), claims.TenantSession)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactions)
}

// Create records a transaction in the caller's workspace.
//
// @Summary      Record a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTransactionRequest  true  "Transaction details"
// @Success      201   {object}  domain.Transaction
// @Failure      400   {object}  map[string]string
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var date time.Time
	if req.Date != "" {
		date = parseDate(req.Date)
	}

	tx, err := h.service.Create(c.Request().Context(), claims.TenantSession, claims.AccountID, ports.CreateTransactionInput{
		Amount:      req.Amount,
		Type:        domain.TransactionType(req.Type),
		Category:    req.Category,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("transaction", "create").Inc()
	return c.JSON(http.StatusCreated, tx)
}

// Update applies a partial update to a transaction in the caller's workspace.
//
// @Summary      Update a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Transaction id"
// @Param        body  body      updateTransactionRequest  true  "Fields to update"
// @Success      200   {object}  domain.Transaction
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var txType *domain.TransactionType
	if req.Type != nil {
		t := domain.TransactionType(*req.Type)
		txType = &t
	}

	tx, err := h.service.Update(c.Request().Context(), c.Param("id"), claims.TenantSession, ports.UpdateTransactionInput{
		Amount:      req.Amount,
		Type:        txType,
		Category:    req.Category,
		Date:        parseDatePtr(req.Date),
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("transaction", "update").Inc()
	return c.JSON(http.StatusOK, tx)
}

// Delete removes a transaction from the caller's workspace.
//
// @Summary      Delete a transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Transaction id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.TenantSession); err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("transaction", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "transaction deleted"})
}
