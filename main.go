// File: bookmycourt/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"

	"bookmycourt/config"
	"bookmycourt/cron"
	"bookmycourt/database"
	bookingRepo "bookmycourt/database/repository/booking"
	courtRepo "bookmycourt/database/repository/court"
	userRepoPkg "bookmycourt/database/repository/user"
	"bookmycourt/handlers"
	"bookmycourt/middleware"
	"bookmycourt/routes"
	"bookmycourt/services/booking"
	"bookmycourt/services/court"
	"bookmycourt/services/notification"
	"bookmycourt/services/realtime"
	"bookmycourt/services/user"
	"bookmycourt/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.StartHealthMonitor(database.MongoClient, utils.GetCacheClient(), utils.GetAuthCacheClient())
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	courts := courtRepo.NewMongoCourtRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	users := userRepoPkg.NewMongoUserRepo()

	// Booking emails go through the asynq queue; the worker owns the mailer.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()
	cron.InitEmailWorker(notification.NewSMTPMailer())

	// services.
	hub := realtime.GetHub()
	notificationService := &notification.DefaultNotificationService{
		Hub:   hub,
		Queue: queueClient,
	}

	userService := &user.DefaultUserService{
		Repo: users,
	}
	courtService := &court.DefaultCourtService{
		Repo: courts,
	}
	bookingService := &booking.DefaultBookingService{
		BookingRepo:  bookings,
		CourtRepo:    courts,
		UserRepo:     users,
		Notification: notificationService,
		Payments:     booking.StripeVerifier{},
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserService:    userService,
		CourtService:   courtService,
		BookingService: bookingService,
		Notification:   notificationService,
		Hub:            hub,
		UserRepo:       users,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Periodic sweep: completed bookings whose interval has passed.
	sweeper := cron.StartBookingSweeper(bookings)
	defer sweeper.Stop()

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
