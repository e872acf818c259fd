package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	md "github.com/smartlib/circulation-service/pkg/middleware"
	"github.com/smartlib/circulation-service/pkg/validate"
	_ "github.com/smartlib/circulation-service/swagger"
)

type Handler struct {
	circulationSvc CirculationService
	catalogSvc     CatalogService
	adminSvc       AdminService
	statsSvc       StatsService
	log            *zap.Logger
}

func New(circulationSvc CirculationService, catalogSvc CatalogService, adminSvc AdminService, statsSvc StatsService, log *zap.Logger) *Handler {
	return &Handler{
		circulationSvc: circulationSvc,
		catalogSvc:     catalogSvc,
		adminSvc:       adminSvc,
		statsSvc:       statsSvc,
		log:            log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/login", h.Login)

	authed := api.Group("", md.JwtAuthentication)

	authed.GET("/loans", h.GetLoans)
	authed.POST("/loans", h.IssueBook)
	authed.PUT("/loans/:loanId", h.UpdateLoan)
	authed.POST("/loans/:loanId/return", h.ReturnBook)
	authed.POST("/loans/:loanId/remind", h.SendReminder)

	authed.GET("/books", h.GetBooks)
	authed.GET("/books/:bookId", h.GetBook)
	authed.POST("/books", h.CreateBook)
	authed.PUT("/books/:bookId", h.UpdateBook)
	authed.DELETE("/books/:bookId", h.DeleteBook)

	authed.GET("/admins", h.GetAdmins)
	authed.POST("/admins", h.CreateAdmin)
	authed.DELETE("/admins/:adminId", h.DeleteAdmin)

	authed.GET("/stats", h.GetStats)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetStats(c echo.Context) error {
	summary, err := h.statsSvc.Summary(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}
