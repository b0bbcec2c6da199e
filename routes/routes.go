package routes

import (
	"net/http"
	"time"

	"mentormatch/config"
	"mentormatch/database"
	"mentormatch/handlers"
	"mentormatch/middleware"
	"mentormatch/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/google", hb.Auth.GoogleSignInHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo, hb.ProfileRepo))
		protected.GET("/me", hb.Auth.MeHandler)
		protected.POST("/logout", hb.Auth.LogoutHandler)
		protected.POST("/device-token", hb.Auth.RegisterDeviceTokenHandler)
		protected.DELETE("/account", hb.Auth.DeleteAccountHandler)
	}
}

// RegisterProfileRoutes registers the caller's own profile endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, hb.ProfileRepo))
		api.GET("", hb.Profile.GetProfileHandler)
		api.PATCH("", hb.Profile.UpdateProfileHandler)
		api.POST("/become-mentor", hb.Profile.BecomeMentorHandler)
		api.PUT("/mentor-active", hb.Profile.SetMentorActiveHandler)
		api.POST("/avatar", hb.Profile.UploadAvatarHandler)
		api.PUT("/availability", hb.Profile.SetAvailabilityHandler)
		api.POST("/import/linkedin", hb.Profile.ImportLinkedInHandler)
		api.GET("/import/linkedin/status", hb.Profile.LinkedInStatusHandler)
	}
}

// RegisterMentorRoutes registers mentor discovery endpoints. Browse and
// detail are public; engagement requires authentication.
func RegisterMentorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/mentors")
	{
		api.GET("", hb.Mentor.SearchHandler)
		api.GET("/categories", hb.Mentor.ListCategoriesHandler)
		api.GET("/category/:slug", hb.Mentor.ListByCategoryHandler)
		api.GET("/:id", hb.Mentor.GetDetailHandler)
		api.GET("/:id/slots", hb.Mentor.AvailableSlotsHandler)
		api.GET("/:id/reviews", hb.Review.MentorStatsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo, hb.ProfileRepo))
		protected.GET("/recommended", hb.Mentor.RecommendedHandler)
		protected.POST("/:id/like", hb.Mentor.LikeHandler)
		protected.POST("/:id/save", hb.Mentor.SaveHandler)
		protected.DELETE("/:id/save", hb.Mentor.UnsaveHandler)
		protected.GET("/saved/list", hb.Mentor.ListSavedHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, hb.ProfileRepo))
		api.POST("", hb.Booking.CreateBookingHandler)
		api.GET("", hb.Booking.ListBookingsHandler)
		api.GET("/availability", hb.Booking.CheckAvailabilityHandler)
		api.GET("/quote", hb.Booking.PriceQuoteHandler)
		api.GET("/:id", hb.Booking.GetBookingHandler)
		api.POST("/:id/confirm", hb.Booking.ConfirmBookingHandler)
		api.POST("/:id/cancel", hb.Booking.CancelBookingHandler)
		api.POST("/:id/reschedule", hb.Booking.RescheduleBookingHandler)
	}
}

// RegisterSessionRoutes registers video session endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, hb.ProfileRepo))
		api.GET("", hb.Session.ListSessionsHandler)
		api.POST("/start/:bookingID", hb.Session.StartSessionHandler)
		api.GET("/:id", hb.Session.GetSessionHandler)
		api.POST("/:id/join", hb.Session.JoinSessionHandler)
		api.POST("/:id/end", hb.Session.EndSessionHandler)
	}
}

// RegisterPaymentRoutes registers payment endpoints. The Stripe webhook is
// public; Stripe authenticates it with the signature header.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/payments/webhook", hb.Payment.StripeWebhookHandler)

	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, hb.ProfileRepo))
		api.POST("/connect/onboard", hb.Payment.OnboardMentorHandler)
		api.GET("/connect/status", hb.Payment.ConnectStatusHandler)
		api.POST("/checkout", hb.Payment.CreateCheckoutHandler)
		api.POST("/tip", hb.Payment.TipMentorHandler)
		api.GET("/transactions", hb.Payment.ListTransactionsHandler)
		api.GET("/payouts", hb.Payment.ListPayoutsHandler)
		api.GET("/tips", hb.Payment.ListTipsHandler)
	}
}

// RegisterReviewRoutes registers review submission.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/reviews/session/:sessionID", hb.Review.GetSessionReviewHandler)

	api := r.Group("/api/reviews")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, hb.ProfileRepo))
		api.POST("", hb.Review.CreateReviewHandler)
		api.DELETE("/:id", hb.Review.DeleteReviewHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.CheckHealth(database.MongoClient))
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterMentorRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterHealthRoute(r)
}
