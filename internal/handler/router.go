package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cappa-booking/internal/handler/api"
	"cappa-booking/internal/handler/middleware"
	"cappa-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	reservationHandler *api.ReservationHandler,
	paymentHandler *api.PaymentHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookingHandler, reservationHandler, paymentHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	reservationHandler *api.ReservationHandler,
	paymentHandler *api.PaymentHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := engine.Group("/api/v1")
	{
		users := v1.Group("/auth/users")
		{
			addRoutes(users, []route{
				{Method: http.MethodPost, Path: "", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/verify-account", Handler: authHandler.VerifyAccount},
				{Method: http.MethodPost, Path: "/resend-otp", Handler: authHandler.ResendOTP},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := users.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		hotel := v1.Group("/hotel")
		{
			hotel.GET("/rooms", bookingHandler.ListRooms)

			flows := hotel.Group("/booking-flows")
			{
				// Intake accepts anonymous visitors; the flow demands login
				// before a reservation is created.
				flows.POST("", authMiddleware.OptionalAuth(), bookingHandler.SubmitIntake)
				flows.POST("/:id/quote", bookingHandler.PreviewQuote)

				flowsAuth := flows.Group("")
				flowsAuth.Use(authMiddleware.RequireAuth())
				addRoutes(flowsAuth, []route{
					{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.ResumeFlow},
					{Method: http.MethodPost, Path: "/:id/rooms", Handler: bookingHandler.SelectRooms},
				})
			}

			reservations := hotel.Group("/reservations")
			reservations.Use(authMiddleware.RequireAuth())
			{
				addRoutes(reservations, []route{
					{Method: http.MethodGet, Path: "/history", Handler: reservationHandler.GetHistory},
					{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
					{Method: http.MethodPatch, Path: "/:id/cancel", Handler: reservationHandler.Cancel},
					{Method: http.MethodPatch, Path: "/:id/modify", Handler: reservationHandler.Modify},
				})
			}

			refunds := hotel.Group("/payment")
			refunds.Use(authMiddleware.RequireAuth())
			refunds.POST("/refund/request/:id", paymentHandler.RequestRefund)
		}

		payment := v1.Group("/payment")
		payment.Use(authMiddleware.RequireAuth())
		{
			addRoutes(payment, []route{
				{Method: http.MethodGet, Path: "/verify", Handler: paymentHandler.Verify},
				{Method: http.MethodPost, Path: "/:gateway/initialize/:id", Handler: paymentHandler.Initialize},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
