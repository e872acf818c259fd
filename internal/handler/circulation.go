package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smartlib/circulation-service/internal/errs"
	"github.com/smartlib/circulation-service/internal/model"
)

func (h *Handler) GetLoans(c echo.Context) error {
	loans, err := h.circulationSvc.ListLoans(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) IssueBook(c echo.Context) error {
	var req model.IssueBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	loan, err := h.circulationSvc.IssueBook(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrInsufficientStock):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, loan)
}

func (h *Handler) UpdateLoan(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return err
	}
	var req model.UpdateLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	loan, err := h.circulationSvc.UpdateLoan(c.Request().Context(), loanID, req)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) ReturnBook(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return err
	}
	var req model.ReturnBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	loan, err := h.circulationSvc.ReturnBook(c.Request().Context(), loanID, req.BookID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrAlreadyReturned):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) SendReminder(c echo.Context) error {
	loanID, err := loanIDParam(c)
	if err != nil {
		return err
	}

	if err := h.circulationSvc.SendReminder(c.Request().Context(), loanID); err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrGatewayFailure):
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reminder sent"})
}

func loanIDParam(c echo.Context) (int, error) {
	loanID, err := strconv.Atoi(c.Param("loanId"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "loanId is invalid")
	}
	return loanID, nil
}
