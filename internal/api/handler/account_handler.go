package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestioplus/gestio-api/internal/api/metrics"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

// AccountHandler handles workspace member management (admin) and
// self-service profile routes.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

type createAccountRequest struct {
	Name            string `json:"name"             validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Role            string `json:"role"             validate:"omitempty,oneof=admin user"`
	Status          string `json:"status"           validate:"omitempty,oneof=active 'no active'"`
}

type updateAccountRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"  validate:"omitempty,email"`
	Role   *string `json:"role"   validate:"omitempty,oneof=admin user"`
	Status *string `json:"status" validate:"omitempty,oneof=active 'no active'"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// List returns all accounts in the caller's workspace, passwords excluded.
//
// @Summary      List workspace members
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Account
// @Failure      403  {object}  map[string]string
// @Router       /api/users [get]
func (h *AccountHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	accounts, err := h.service.List(c.Request().Context(), claims.TenantSession)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// Get returns one account from the caller's workspace.
//
// @Summary      Get a workspace member
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Account id"
// @Success      200  {object}  domain.Account
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	account, err := h.service.Get(c.Request().Context(), c.Param("id"), claims.TenantSession)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Create adds a member to the caller's workspace. The new account inherits
// the caller's tenant session.
//
// @Summary      Create a workspace member
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/users [post]
func (h *AccountHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Password != req.ConfirmPassword {
		return echo.NewHTTPError(http.StatusBadRequest, "passwords do not match")
	}

	account, err := h.service.Create(c.Request().Context(), claims.TenantSession, ports.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("account", "create").Inc()
	return c.JSON(http.StatusCreated, account)
}

// Update applies a partial update to a workspace member. Password changes
// are rejected at the type level: the request struct has no password field.
//
// @Summary      Update a workspace member
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Account id"
// @Param        body  body      updateAccountRequest  true  "Fields to update"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/{id} [patch]
func (h *AccountHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.Update(c.Request().Context(), c.Param("id"), claims.TenantSession, ports.UpdateAccountInput{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("account", "update").Inc()
	return c.JSON(http.StatusOK, account)
}

// Delete removes a workspace member.
//
// @Summary      Delete a workspace member
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Account id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.TenantSession); err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("account", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "account deleted"})
}

// Profile returns the caller's own account.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Account
// @Router       /api/users/me/profile [get]
func (h *AccountHandler) Profile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	account, err := h.service.Profile(c.Request().Context(), claims.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateProfile applies a self-service update to the caller's own account.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Router       /api/users/me/profile [patch]
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.UpdateProfile(c.Request().Context(), claims.AccountID, ports.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}
