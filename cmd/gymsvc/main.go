package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/avvvet/gym-services/configs"
	"github.com/avvvet/gym-services/internal/db"
	"github.com/avvvet/gym-services/internal/gymsvc/auth"
	"github.com/avvvet/gym-services/internal/gymsvc/broker"
	gymconfig "github.com/avvvet/gym-services/internal/gymsvc/config"
	handlers "github.com/avvvet/gym-services/internal/gymsvc/handlers"
	"github.com/avvvet/gym-services/internal/gymsvc/metrics"
	"github.com/avvvet/gym-services/internal/gymsvc/service"
	"github.com/avvvet/gym-services/internal/gymsvc/store"
	"github.com/avvvet/gym-services/internal/gymsvc/store/memory"
	natscli "github.com/avvvet/gym-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "gym"

func main() {
	if err := run(); err != nil {
		log.Fatalf("%s service: %v", SERVICE_NAME, err)
	}
}

// run wires the service and blocks until a shutdown signal arrives or the listener fails.
// Every resource it opens is released by a deferred call before it returns.
func run() error {
	config.LoadEnv(SERVICE_NAME)

	cfg, err := gymconfig.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	instanceId, err := config.CreateUniqueInstance(SERVICE_NAME)
	if err != nil {
		return fmt.Errorf("error generating instanceId: %w", err)
	}
	config.Logging(SERVICE_NAME+"_service_"+instanceId, cfg.LogDir, cfg.LogLevel)

	ctx := context.Background()

	// entity store
	var st service.Store
	switch cfg.Store {
	case gymconfig.StoreMemory:
		st = memory.New()
		log.Warn("using in-memory store, data is lost on restart")
	default:
		client, database, err := db.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return fmt.Errorf("failed to connect to DB: %w", err)
		}
		defer client.Disconnect(context.Background())

		mongoStore := store.New(database)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
		st = mongoStore
	}

	// events and control requests over NATS
	var (
		events service.Events = service.NoopEvents{}
		b      *broker.Broker
	)
	if cfg.NatsEnabled {
		n, err := natscli.Connect(SERVICE_NAME+"_service_"+instanceId, cfg.NatsURL, cfg.NatsToken)
		if err != nil {
			return fmt.Errorf("unable to connect to NATS server: %w", err)
		}
		defer n.Close()
		log.Printf("NATS connection established successfully %s", n.Url)

		b = broker.NewBroker(n.Conn, instanceId)
		events = b
	}

	m := metrics.New()
	events = m.Events(events)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	svc := handlers.Services{
		Admins:     service.NewAdminService(st),
		Clients:    service.NewClientService(st, events),
		Attendance: service.NewAttendanceService(st, events),
		Payments:   service.NewPaymentService(st, events, cfg.PaymentRetentionMonths),
		Auth:       service.NewAuthService(st, st, tokens),
	}

	if b != nil {
		b.Attendance = svc.Attendance
		b.Payments = svc.Payments
		sub, err := b.QueueSubscribeService()
		if err != nil {
			return fmt.Errorf("unable to subscribe to queue: %w", err)
		}
		defer sub.Unsubscribe()
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.CORSOrigins)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(m.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	r.Handle("/metrics", m.Handler())

	// Init handlers and routes
	h := handlers.NewHandler(svc, tokens, cfg.Port)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("ListenAndServe(): %w", err)
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
	return nil
}
