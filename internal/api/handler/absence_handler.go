package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestioplus/gestio-api/internal/api/metrics"
	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

// AbsenceHandler handles HTTP requests for leave requests.
type AbsenceHandler struct {
	service ports.AbsenceService
}

func NewAbsenceHandler(service ports.AbsenceService) *AbsenceHandler {
	return &AbsenceHandler{service: service}
}

type createAbsenceRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	StartDate  string `json:"start_date"  validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date"    validate:"required,datetime=2006-01-02"`
	Reason     string `json:"reason"      validate:"required"`
	Status     string `json:"status"      validate:"omitempty,oneof=pending approved rejected"`
}

type updateAbsenceRequest struct {
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Reason    *string `json:"reason"`
	Status    *string `json:"status"     validate:"omitempty,oneof=pending approved rejected"`
}

// List returns all absences in the caller's workspace.
//
// @Summary      List absences
// @Tags         absences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Absence
// @Router       /api/absences [get]
func (h *AbsenceHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	absences, err := h.service.List(c.Request().Context(), claims.TenantSession)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, absences)
}

// Create files an absence for an employee of the caller's workspace.
//
// @Summary      File an absence
// @Tags         absences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAbsenceRequest  true  "Absence details"
// @Success      201   {object}  domain.Absence
// @Failure      400   {object}  map[string]string
// @Router       /api/absences [post]
func (h *AbsenceHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createAbsenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	absence, err := h.service.Create(c.Request().Context(), claims.TenantSession, ports.CreateAbsenceInput{
		EmployeeID: req.EmployeeID,
		StartDate:  parseDate(req.StartDate),
		EndDate:    parseDate(req.EndDate),
		Reason:     req.Reason,
		Status:     domain.AbsenceStatus(req.Status),
	})
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("absence", "create").Inc()
	return c.JSON(http.StatusCreated, absence)
}

// Update applies a partial update to an absence in the caller's workspace.
//
// @Summary      Update an absence
// @Tags         absences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Absence id"
// @Param        body  body      updateAbsenceRequest  true  "Fields to update"
// @Success      200   {object}  domain.Absence
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/absences/{id} [put]
func (h *AbsenceHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateAbsenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var status *domain.AbsenceStatus
	if req.Status != nil {
		s := domain.AbsenceStatus(*req.Status)
		status = &s
	}

	absence, err := h.service.Update(c.Request().Context(), c.Param("id"), claims.TenantSession, ports.UpdateAbsenceInput{
		StartDate: parseDatePtr(req.StartDate),
		EndDate:   parseDatePtr(req.EndDate),
		Reason:    req.Reason,
		Status:    status,
	})
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("absence", "update").Inc()
	return c.JSON(http.StatusOK, absence)
}

// Delete removes an absence from the caller's workspace.
//
// @Summary      Delete an absence
// @Tags         absences
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Absence id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/absences/{id} [delete]
func (h *AbsenceHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.TenantSession); err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("absence", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "absence deleted"})
}
