package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mindhaven/handlers"
)

// RegisterBookingRoutes sets up the endpoints for the booking flow.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.POST("/session", bh.StartBookingSession)
		bookingGroup.POST("/session/:sessionID/search", bh.SearchTherapists)
		bookingGroup.PUT("/session/:sessionID/therapist", bh.SelectTherapist)
		bookingGroup.PUT("/session/:sessionID/day", bh.SelectDay)
		bookingGroup.PUT("/session/:sessionID/slot", bh.SelectSlot)
		bookingGroup.POST("/session/:sessionID/checkout", bh.Checkout)
		bookingGroup.POST("/session/:sessionID/payment", bh.SubmitPayment)
		bookingGroup.DELETE("/session/:sessionID/payment", bh.CancelPayment)
		bookingGroup.POST("/session/:sessionID/reset", bh.ResetSession)
	}
}

// RegisterSessionRoutes sets up the virtual-session control endpoints.
func RegisterSessionRoutes(r *gin.Engine, sh *handlers.SessionHandler) {
	sessionGroup := r.Group("/api/sessions")
	{
		sessionGroup.GET("/:meetingID", sh.GetSession)
		sessionGroup.POST("/:meetingID/mute", sh.ToggleMute)
		sessionGroup.POST("/:meetingID/video", sh.ToggleVideo)
		sessionGroup.POST("/:meetingID/end", sh.EndSession)
		sessionGroup.DELETE("/:meetingID", sh.TeardownSession)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Mindhaven"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, sh *handlers.SessionHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, bh)
	RegisterSessionRoutes(r, sh)
}
