package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cadastro/internal/auth"
	"cadastro/internal/errors"
	"cadastro/internal/service"
)

// AddressHandler bundles address HTTP handlers.
type AddressHandler struct {
	svc service.AddressService
}

// NewAddressHandler creates a handler layer.
func NewAddressHandler(svc service.AddressService) *AddressHandler {
	return &AddressHandler{svc: svc}
}

// CreateAddressRequest represents an address creation request.
type CreateAddressRequest struct {
	Road        string `json:"road" validate:"required,max=150"`
	District    string `json:"district" validate:"required,max=150"`
	City        string `json:"city" validate:"required,max=150"`
	HouseNumber int    `json:"house_number" validate:"required"`
	Cep         string `json:"cep" validate:"required,len=8"`
	State       string `json:"state" validate:"required,len=2"`
	Complement  string `json:"complement" validate:"omitempty"`
}

// UpdateAddressRequest represents a partial address update.
type UpdateAddressRequest struct {
	Road        *string `json:"road" validate:"omitempty,max=150"`
	District    *string `json:"district" validate:"omitempty,max=150"`
	City        *string `json:"city" validate:"omitempty,max=150"`
	HouseNumber *int    `json:"house_number" validate:"omitempty"`
	Cep         *string `json:"cep" validate:"omitempty,len=8"`
	State       *string `json:"state" validate:"omitempty,len=2"`
	Complement  *string `json:"complement" validate:"omitempty"`
}

// Create godoc
// @Summary Register the caller's address
// @Tags address
// @Accept json
// @Produce json
// @Param request body CreateAddressRequest true "Address payload"
// @Success 201 {object} model.AddressView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /address [post]
func (h *AddressHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req CreateAddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.svc.Create(c.Request().Context(), service.CreateAddressInput{
		Road:        req.Road,
		District:    req.District,
		City:        req.City,
		HouseNumber: req.HouseNumber,
		Cep:         req.Cep,
		State:       req.State,
		Complement:  req.Complement,
	}, caller)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, view)
}

// List godoc
// @Summary List addresses
// @Tags address
// @Produce json
// @Success 200 {array} model.AddressView
// @Security BearerAuth
// @Router /address [get]
func (h *AddressHandler) List(c echo.Context) error {
	views, err := h.svc.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, views)
}

// Get godoc
// @Summary Get address by id
// @Tags address
// @Produce json
// @Param id path string true "Address ID"
// @Success 200 {object} model.AddressView
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /address/{id} [get]
func (h *AddressHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	view, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, view)
}

// Update godoc
// @Summary Update own address
// @Tags address
// @Accept json
// @Produce json
// @Param id path string true "Address ID"
// @Param request body UpdateAddressRequest true "Fields to update"
// @Success 200 {object} model.AddressView
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /address/{id} [patch]
func (h *AddressHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.checkOwner(c, id); err != nil {
		return err
	}

	var req UpdateAddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.svc.Update(c.Request().Context(), id, service.UpdateAddressInput{
		Road:        req.Road,
		District:    req.District,
		City:        req.City,
		HouseNumber: req.HouseNumber,
		Cep:         req.Cep,
		State:       req.State,
		Complement:  req.Complement,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, view)
}

// Remove godoc
// @Summary Delete own address
// @Tags address
// @Param id path string true "Address ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /address/{id} [delete]
func (h *AddressHandler) Remove(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.checkOwner(c, id); err != nil {
		return err
	}

	if err := h.svc.Remove(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// checkOwner resolves the address and verifies the caller owns it. A missing
// address propagates as not-found before any ownership decision is made.
func (h *AddressHandler) checkOwner(c echo.Context, id uuid.UUID) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	current, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := auth.CheckAddressOwnership(caller, current.OwnerID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return nil
}
