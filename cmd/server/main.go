package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"diabcar/internal/api"
	"diabcar/internal/auth"
	"diabcar/internal/repository"
	"diabcar/internal/service"
	"diabcar/internal/upload"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(10)
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "public/uploads"
	}
	images, err := upload.NewStore(uploadDir)
	if err != nil {
		log.Fatalf("Failed to init upload store: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	carRepo := repository.NewCarRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	contactRepo := repository.NewContactRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	jobRepo := repository.NewJobRepository(db)

	sender := service.NewSenderService()
	authSvc := service.NewAuthService(userRepo, jwtSecret)
	userSvc := service.NewUserService(userRepo)
	carSvc := service.NewCarService(carRepo, images)
	bookingSvc := service.NewBookingService(bookingRepo, carRepo, userRepo, sender)
	reviewSvc := service.NewReviewService(reviewRepo)
	contactSvc := service.NewContactService(contactRepo)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo)
	jobSvc := service.NewJobService(jobRepo)

	authHandler := api.NewAuthHandler(authSvc)
	userHandler := api.NewUserHandler(userSvc)
	carHandler := api.NewCarHandler(carSvc, images)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	reviewHandler := api.NewReviewHandler(reviewSvc)
	contactHandler := api.NewContactHandler(contactSvc)
	adminHandler := api.NewAdminHandler(analyticsSvc)

	r := mux.NewRouter()
	r.Use(api.RecoverMiddleware, api.TimeoutMiddleware(10*time.Second))
	r.NotFoundHandler = api.NotFoundHandler()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")
	r.HandleFunc("/api/cars", carHandler.ListCars).Methods("GET")
	r.HandleFunc("/api/cars/{id}", carHandler.GetCar).Methods("GET")
	r.HandleFunc("/api/availability", bookingHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/reviews", reviewHandler.ListApprovedReviews).Methods("GET")
	r.HandleFunc("/api/contact", contactHandler.SubmitMessage).Methods("POST")
	r.PathPrefix(upload.URLPrefix).Handler(
		http.StripPrefix(upload.URLPrefix, http.FileServer(http.Dir(uploadDir)))).Methods("GET")

	// Authenticated endpoints
	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(auth.Middleware(jwtSecret))
	authed.HandleFunc("/bookings", bookingHandler.CreateBooking).Methods("POST")
	authed.HandleFunc("/bookings/user/{userId}", bookingHandler.ListBookingsForUser).Methods("GET")
	authed.HandleFunc("/reviews", reviewHandler.CreateReview).Methods("POST")
	authed.HandleFunc("/users/{id}", userHandler.GetUser).Methods("GET")
	authed.HandleFunc("/users/{id}", userHandler.UpdateUser).Methods("PUT")

	// Admin endpoints
	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(auth.Middleware(jwtSecret), auth.RequireAdmin)
	admin.HandleFunc("/cars", carHandler.CreateCar).Methods("POST")
	admin.HandleFunc("/cars/{id}", carHandler.UpdateCar).Methods("PUT")
	admin.HandleFunc("/cars/{id}/availability", carHandler.UpdateAvailability).Methods("PUT")
	admin.HandleFunc("/cars/{id}", carHandler.DeleteCar).Methods("DELETE")
	admin.HandleFunc("/bookings", bookingHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/bookings/{id}", bookingHandler.UpdateBooking).Methods("PUT")
	admin.HandleFunc("/bookings/{id}", bookingHandler.DeleteBooking).Methods("DELETE")
	admin.HandleFunc("/reviews/{id}/approve", reviewHandler.ApproveReview).Methods("PUT")
	admin.HandleFunc("/reviews/{id}", reviewHandler.DeleteReview).Methods("DELETE")
	admin.HandleFunc("/users", userHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}/status", userHandler.UpdateUserStatus).Methods("PUT")
	admin.HandleFunc("/users/{id}", userHandler.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/admin/dashboard", adminHandler.Dashboard).Methods("GET")
	admin.HandleFunc("/analytics/metrics", adminHandler.Metrics).Methods("GET")
	admin.HandleFunc("/analytics/sales-overview", adminHandler.SalesOverview).Methods("GET")
	admin.HandleFunc("/analytics/sales-by-country", adminHandler.SalesByCountry).Methods("GET")
	admin.HandleFunc("/analytics/top-categories", adminHandler.TopCategories).Methods("GET")
	admin.HandleFunc("/analytics/recent-orders", adminHandler.RecentOrders).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := jobSvc.CompleteFinishedBookings(ctx); err != nil {
			log.Printf("completing finished bookings: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule booking completion job: %v", err)
	}
	c.Start()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      cors(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server running on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
	<-c.Stop().Done()
}
