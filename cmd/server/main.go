package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/flightreservation/internal/cache"
	"github.com/dharmasatrya/flightreservation/internal/config"
	"github.com/dharmasatrya/flightreservation/internal/handler"
	"github.com/dharmasatrya/flightreservation/internal/history"
	"github.com/dharmasatrya/flightreservation/internal/ratelimit"
	"github.com/dharmasatrya/flightreservation/internal/reservation"
	"github.com/dharmasatrya/flightreservation/internal/service"
	"github.com/dharmasatrya/flightreservation/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	engine := reservation.New(reservation.Config{
		MaxAirports:      cfg.MaxAirports,
		WaitlistCapacity: cfg.WaitlistCap,
	})

	recorder := initRecorder(cfg)
	defer recorder.Close()

	routeCache := initCache(cfg)
	defer routeCache.Close()

	svc := service.New(engine, recorder, routeCache)

	paths := store.DefaultPaths(cfg.DataDir)
	report, err := svc.Load(paths)
	if err != nil {
		log.Fatalf("Failed to load data from %s: %v", cfg.DataDir, err)
	}
	log.Printf("Loaded %d flights, %d passengers, %d waitlisted (%d skipped, %d promoted) from %s",
		report.Flights, report.Passengers, report.Waitlisted, report.Skipped, report.Promoted, cfg.DataDir)

	e := echo.New()
	// Rate limits key on the peer address; forwarding headers are client-controlled.
	e.IPExtractor = echo.ExtractIPDirect()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	limiter := ratelimit.NewClientLimiter(ratelimit.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	})

	reservationHandler := handler.NewReservationHandler(svc)

	api := e.Group("/api/v1", limiter.Middleware())
	reservationHandler.Register(api)
	e.GET("/health", reservationHandler.Health)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go limiter.Run(ctx, time.Minute)

	go func() {
		log.Printf("Starting flight reservation server on port %s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}

	if err := svc.Save(paths); err != nil {
		log.Printf("Failed to save data to %s: %v", cfg.DataDir, err)
		return
	}
	log.Printf("Saved data to %s", cfg.DataDir)
}

func initRecorder(cfg config.Config) history.Recorder {
	var recorders history.Multi

	fileRecorder, err := history.NewFileRecorder(cfg.HistoryFile)
	if err != nil {
		log.Fatalf("Failed to open passenger history: %v", err)
	}
	recorders = append(recorders, fileRecorder)
	log.Printf("Recording passenger history to %s", cfg.HistoryFile)

	if cfg.EventsEnabled {
		publisher, err := history.NewAMQPPublisher(cfg.RabbitMQURL, history.DefaultQueue)
		if err != nil {
			log.Printf("RabbitMQ unavailable, events disabled: %v", err)
		} else {
			recorders = append(recorders, publisher)
			log.Printf("Publishing booking events to queue %s", history.DefaultQueue)
		}
	}

	return recorders
}

func initCache(cfg config.Config) cache.Cache {
	if !cfg.CacheEnabled {
		log.Println("Route cache disabled")
		return cache.NewNoOpCache()
	}

	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Host: cfg.RedisHost,
		Port: cfg.RedisPort,
		TTL:  cfg.RedisTTL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Printf("Redis route cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	return redisCache
}
