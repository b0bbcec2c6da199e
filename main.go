// File: mentormatch/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentormatch/config"
	"mentormatch/cron"
	"mentormatch/database"
	bookingRepoPkg "mentormatch/database/repository/booking"
	categoryRepoPkg "mentormatch/database/repository/category"
	paymentRepoPkg "mentormatch/database/repository/payment"
	profileRepoPkg "mentormatch/database/repository/profile"
	reviewRepoPkg "mentormatch/database/repository/review"
	sessionRepoPkg "mentormatch/database/repository/session"
	userRepoPkg "mentormatch/database/repository/user"
	"mentormatch/handlers"
	"mentormatch/middleware"
	"mentormatch/routes"
	"mentormatch/services/booking"
	"mentormatch/services/linkedin"
	"mentormatch/services/mentor"
	"mentormatch/services/notification"
	"mentormatch/services/payment"
	"mentormatch/services/profile"
	"mentormatch/services/review"
	"mentormatch/services/session"
	"mentormatch/services/tasks"
	"mentormatch/services/user"
	"mentormatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	cloudinaryStorage, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Warnf("main: cloudinary unavailable, avatar uploads disabled: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	profileRepo := profileRepoPkg.NewMongoProfileRepo()
	categoryRepo := categoryRepoPkg.NewMongoCategoryRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()

	// services.
	userService := &user.DefaultUserService{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
	}
	profileService := &profile.DefaultProfileService{
		ProfileRepo:  profileRepo,
		CategoryRepo: categoryRepo,
		Storage:      cloudinaryStorage,
	}
	mentorService := &mentor.DefaultMentorService{
		ProfileRepo:  profileRepo,
		CategoryRepo: categoryRepo,
		ReviewRepo:   reviewRepo,
		BookingRepo:  bookingRepo,
	}
	notificationService := &notification.DefaultNotificationService{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
	}
	reminderScheduler := tasks.NewAsynqReminderScheduler()
	bookingService := &booking.DefaultBookingService{
		BookingRepo: bookingRepo,
		ProfileRepo: profileRepo,
		SessionRepo: sessionRepo,
		PaymentRepo: paymentRepo,
		Notifier:    notificationService,
		Scheduler:   reminderScheduler,
	}
	sessionService := &session.DefaultSessionService{
		SessionRepo: sessionRepo,
		BookingSvc:  bookingService,
	}
	reviewService := &review.DefaultReviewService{
		ReviewRepo:  reviewRepo,
		BookingRepo: bookingRepo,
		ProfileRepo: profileRepo,
		SessionRepo: sessionRepo,
	}
	paymentService := &payment.DefaultPaymentService{
		PaymentRepo: paymentRepo,
		BookingRepo: bookingRepo,
		ProfileRepo: profileRepo,
		UserRepo:    userRepo,
	}

	var linkedInService linkedin.LinkedInService
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		svc, err := linkedin.NewGeminiLinkedInService(key)
		if err != nil {
			logger.Sugar().Warnf("main: linkedin import disabled: %v", err)
		} else {
			linkedInService = svc
		}
	}

	// Background workers.
	cron.InitReminderWorker(notificationService)
	cron.InitNoShowSweep(bookingService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,

		Auth:    handlers.NewAuthHandler(userService),
		Profile: handlers.NewProfileHandler(profileService, linkedInService),
		Mentor:  handlers.NewMentorHandler(mentorService, categoryRepo),
		Booking: handlers.NewBookingHandler(bookingService, paymentService),
		Session: handlers.NewSessionHandler(sessionService),
		Payment: handlers.NewPaymentHandler(paymentService),
		Review:  handlers.NewReviewHandler(reviewService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
