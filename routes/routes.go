package routes

import (
	"net/http"
	"time"

	"edupath/handlers"
	"edupath/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HandlerBundle aggregates the handlers the router wires up.
type HandlerBundle struct {
	Wizard  *handlers.WizardHandler
	OTP     *handlers.OTPHandler
	Booking *handlers.BookingHandler
}

// RegisterRoutes attaches every endpoint to the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	registerHealthRoute(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/wizard")
	api.Use(middleware.BearerAuthMiddleware())
	{
		api.POST("/session", hb.Wizard.StartSession)
		api.GET("/session/:sessionID", hb.Wizard.GetSession)
		api.PATCH("/session/:sessionID", hb.Wizard.UpdateSession)
		api.DELETE("/session/:sessionID", hb.Wizard.DiscardSession)
		api.POST("/session/:sessionID/next", hb.Wizard.NextStep)
		api.POST("/session/:sessionID/back", hb.Wizard.BackStep)
		api.GET("/session/:sessionID/availability", hb.Wizard.Availability)
		api.GET("/session/:sessionID/price", hb.Wizard.Price)

		api.POST("/session/:sessionID/otp/send", hb.OTP.SendOTP)
		api.POST("/session/:sessionID/otp/verify", hb.OTP.VerifyOTP)

		api.POST("/session/:sessionID/submit", hb.Booking.Submit)
		api.POST("/session/:sessionID/checkout/complete", hb.Booking.CheckoutComplete)
		api.POST("/session/:sessionID/checkout/failed", hb.Booking.CheckoutFailed)
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm EduPath"})
	})
}
