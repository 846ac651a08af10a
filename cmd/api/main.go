package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/mediease/insurance-portal-service/internal/adapters/handler"
	"github.com/mediease/insurance-portal-service/internal/adapters/middleware"
	"github.com/mediease/insurance-portal-service/internal/adapters/repository"
	"github.com/mediease/insurance-portal-service/internal/adapters/session"
	"github.com/mediease/insurance-portal-service/internal/config"
	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/services"
	"github.com/mediease/insurance-portal-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger("insurance-portal-api", cfg.Env)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	log.Info().Str("addr", cfg.RedisAddress).Msg("connected to redis")

	employeeRepo := repository.NewEmployeeRepository(db)
	insuranceRepo := repository.NewInsuranceRepository(db)
	hospitalRepo := repository.NewHospitalRepository(db)
	claimRepo := repository.NewClaimRepository(db)

	sessions := session.NewRedisStore(redisClient)

	authService := services.NewAuthService(employeeRepo, sessions, cfg.JWTPrivateKey, cfg.TokenTTL)
	registrationService := services.NewRegistrationService(employeeRepo)
	userService := services.NewUserService(employeeRepo)
	claimsService := services.NewClaimsService(claimRepo, insuranceRepo, hospitalRepo)
	reviewService := services.NewReviewService(claimRepo)
	insuranceService := services.NewInsuranceOnboarding(insuranceRepo)
	hospitalService := services.NewHospitalDirectory(hospitalRepo)

	authHandler := handler.NewAuthHandler(authService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	userHandler := handler.NewUserHandler(userService)
	claimsHandler := handler.NewClaimsHandler(claimsService, reviewService)
	insuranceHandler := handler.NewInsuranceHandler(insuranceService)
	hospitalHandler := handler.NewHospitalHandler(hospitalService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey, sessions)
	anyRole := []domain.Role{domain.RoleEmployee, domain.RoleAdmin}
	adminOnly := []domain.Role{domain.RoleAdmin}

	mux := http.NewServeMux()

	// Health endpoints (OpenShift compatible)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public endpoints
	mux.HandleFunc("POST /api/users/login", authHandler.Login)
	mux.HandleFunc("POST /api/users/register", registrationHandler.Register)

	// Authenticated endpoints
	mux.HandleFunc("POST /api/users/logout", authMiddleware.RequireRole(anyRole, authHandler.Logout))
	mux.HandleFunc("GET /api/users/{id}", authMiddleware.RequireRole(anyRole, userHandler.GetByID))

	mux.HandleFunc("POST /api/requests/create", authMiddleware.RequireRole(anyRole, claimsHandler.Create))
	mux.HandleFunc("GET /api/requests/employee/{empId}", authMiddleware.RequireRole(anyRole, claimsHandler.ByEmployee))
	mux.HandleFunc("GET /api/requests/all", authMiddleware.RequireRole(adminOnly, claimsHandler.All))
	mux.HandleFunc("GET /api/requests/filtered", authMiddleware.RequireRole(adminOnly, claimsHandler.Filtered))
	mux.HandleFunc("PUT /api/requests/approve/{id}", authMiddleware.RequireRole(adminOnly, claimsHandler.Approve))
	mux.HandleFunc("PUT /api/requests/reject/{id}", authMiddleware.RequireRole(adminOnly, claimsHandler.Reject))

	mux.HandleFunc("GET /api/insurance/packages", insuranceHandler.Packages)
	mux.HandleFunc("POST /api/insurance/create", authMiddleware.RequireRole(anyRole, insuranceHandler.Create))
	mux.HandleFunc("GET /api/insurance/{empId}", authMiddleware.RequireRole(anyRole, insuranceHandler.ByEmployee))

	mux.HandleFunc("GET /api/insurance/dependants/{empId}", authMiddleware.RequireRole(anyRole, insuranceHandler.Dependants))
	mux.HandleFunc("POST /api/insurance/dependant/add", authMiddleware.RequireRole(anyRole, insuranceHandler.AddDependant))
	mux.HandleFunc("PUT /api/insurance/dependant/update/{id}", authMiddleware.RequireRole(anyRole, insuranceHandler.UpdateDependant))
	mux.HandleFunc("DELETE /api/insurance/dependant/delete/{id}", authMiddleware.RequireRole(anyRole, insuranceHandler.DeleteDependant))

	mux.HandleFunc("GET /api/hospitals/all", authMiddleware.RequireRole(anyRole, hospitalHandler.All))
	mux.HandleFunc("GET /api/hospitals/city/{city}", authMiddleware.RequireRole(anyRole, hospitalHandler.ByCity))
	mux.HandleFunc("GET /api/hospitals/state/{state}", authMiddleware.RequireRole(anyRole, hospitalHandler.ByState))
	mux.HandleFunc("GET /api/hospitals/{id}", authMiddleware.RequireRole(anyRole, hospitalHandler.ByID))

	chain := middleware.CORSMiddleware(cfg.CORSOrigins)(middleware.Metrics(mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      chain,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("could not start server")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
}
