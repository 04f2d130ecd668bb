package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v82"

	"tricoterie/internal/api"
	"tricoterie/internal/auth"
	"tricoterie/internal/repository"
	"tricoterie/internal/service"
	"tricoterie/internal/slots"
)

func main() {
	godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	var slotStore slots.Store
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		slotStore = slots.NewRedisStore(redisClient)
	} else {
		log.Println("REDIS_ADDR not set, slot buckets are kept in memory only")
		slotStore = slots.NewMemoryStore()
	}
	tracker := slots.NewTracker(slotStore)

	reservationRepo := repository.NewReservationRepository(db)
	jobRepo := repository.NewJobRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)

	stripeService := service.NewStripeService()
	mailer := service.NewEmailJSClient(envOr("EMAILJS_PUBLIC_KEY", "hB67gvSWDEIYZe80n"))
	sender := service.NewSenderService()
	svc := service.NewReservationService(
		reservationRepo, tracker, mailer, stripeService, sender,
		envOr("EMAILJS_SERVICE_ID", "service_yl0kh3m"),
	)
	adminAuthService := service.NewAdminAuthService(adminAuthRepo)
	jobService := service.NewJobService(jobRepo, reservationRepo, tracker)

	reservationHandler := api.NewReservationHandler(svc)
	checkoutHandler := api.NewCheckoutHandler(stripeService)
	webhookHandler := api.NewStripeWebhookHandler(os.Getenv("STRIPE_WEBHOOK_SECRET"), svc, stripeService)
	adminHandler := api.NewAdminHandler(svc, reservationRepo)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthService)

	c := cron.New()
	c.AddFunc("0 3 * * *", func() {
		if err := jobService.FinishElapsedReservations(); err != nil {
			log.Printf("Cron Job: %v", err)
		}
		if err := jobService.PurgeStale(context.Background()); err != nil {
			log.Printf("Cron Job: %v", err)
		}
	})
	c.Start()

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/validate-date", reservationHandler.ValidateDate).Methods("POST")
	r.HandleFunc("/api/availability", reservationHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/forfaits", reservationHandler.GetForfaits).Methods("GET")
	r.HandleFunc("/api/reservations/{variant}", reservationHandler.SubmitReservation).Methods("POST")
	r.HandleFunc("/create-checkout-session", checkoutHandler.CreateCheckoutSession).Methods("POST")
	r.HandleFunc("/api/stripe/webhook", webhookHandler.HandleWebhook).Methods("POST")

	// Admin auth
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")
	r.HandleFunc("/admin/register", adminAuthHandler.CreateAdmin).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/reservations", adminHandler.ListReservations).Methods("GET")
	admin.HandleFunc("/slots", adminHandler.ListSlotBuckets).Methods("GET")
	admin.HandleFunc("/slots", adminHandler.FreeSlotBucket).Methods("DELETE")

	cors := handlers.CORS(
		handlers.AllowedOrigins(strings.Split(envOr("CORS_ALLOWED_ORIGINS", "*"), ",")),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Setup-Token"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
	)

	port := envOr("PORT", "8080")
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, cors(r)))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
