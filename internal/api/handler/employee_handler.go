package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestioplus/gestio-api/internal/api/metrics"
	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee records.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

type createEmployeeRequest struct {
	Name           string `json:"name"            validate:"required"`
	Position       string `json:"position"        validate:"required"`
	StartDate      string `json:"start_date"      validate:"required,datetime=2006-01-02"`
	Status         string `json:"status"          validate:"omitempty,oneof=active inactive congé essai"`
	Email          string `json:"email"           validate:"required,email"`
	PhoneNumber    string `json:"phone_number"`
	EducationLevel string `json:"education_level"`
	Description    string `json:"description"`
}

type updateEmployeeRequest struct {
	Name           *string `json:"name"`
	Position       *string `json:"position"`
	StartDate      *string `json:"start_date"      validate:"omitempty,datetime=2006-01-02"`
	Status         *string `json:"status"          validate:"omitempty,oneof=active inactive congé essai"`
	Email          *string `json:"email"           validate:"omitempty,email"`
	PhoneNumber    *string `json:"phone_number"`
	EducationLevel *string `json:"education_level"`
	Description    *string `json:"description"`
}

// List returns all employees in the caller's workspace.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Employee
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	employees, err := h.service.List(c.Request().Context(), claims.TenantSession)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employees)
}

// Create adds an employee to the caller's workspace.
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "Employee details"
// @Success      201   {object}  domain.Employee
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.service.Create(c.Request().Context(), claims.TenantSession, ports.CreateEmployeeInput{
		Name:           req.Name,
		Position:       req.Position,
		StartDate:      parseDate(req.StartDate),
		Status:         domain.EmployeeStatus(req.Status),
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		EducationLevel: req.EducationLevel,
		Description:    req.Description,
	})
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("employee", "create").Inc()
	return c.JSON(http.StatusCreated, employee)
}

// Update applies a partial update to an employee in the caller's workspace.
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Employee id"
// @Param        body  body      updateEmployeeRequest  true  "Fields to update"
// @Success      200   {object}  domain.Employee
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var status *domain.EmployeeStatus
	if req.Status != nil {
		s := domain.EmployeeStatus(*req.Status)
		status = &s
	}

	employee, err := h.service.Update(c.Request().Context(), c.Param("id"), claims.TenantSession, ports.UpdateEmployeeInput{
		Name:           req.Name,
		Position:       req.Position,
		StartDate:      parseDatePtr(req.StartDate),
		Status:         status,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		EducationLevel: req.EducationLevel,
		Description:    req.Description,
	})
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("employee", "update").Inc()
	return c.JSON(http.StatusOK, employee)
}

// Delete removes an employee from the caller's workspace.
//
// @Summary      Delete an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Employee id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.TenantSession); err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("employee", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "employee deleted"})
}
