package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smartlib/circulation-service/internal/errs"
	"github.com/smartlib/circulation-service/internal/model"
)

func (h *Handler) Login(c echo.Context) error {
	var req model.AuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, admin, err := h.adminSvc.Authorize(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCreds) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":     token.AccessToken,
		"expiresIn": token.ExpiresIn,
		"user":      admin,
	})
}

func (h *Handler) GetAdmins(c echo.Context) error {
	admins, err := h.adminSvc.ListAdmins(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, admins)
}

func (h *Handler) CreateAdmin(c echo.Context) error {
	var req model.CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := h.adminSvc.CreateAdmin(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, errs.ErrAdminExists) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, admin)
}

func (h *Handler) DeleteAdmin(c echo.Context) error {
	adminID, err := strconv.Atoi(c.Param("adminId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "adminId is invalid")
	}
	if err := h.adminSvc.DeleteAdmin(c.Request().Context(), adminID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
