package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/middleclass/localstore/internal/catalog"
	"github.com/middleclass/localstore/internal/config"
	"github.com/middleclass/localstore/internal/events"
	"github.com/middleclass/localstore/internal/handlers"
	"github.com/middleclass/localstore/internal/logging"
	authmw "github.com/middleclass/localstore/internal/middleware/auth"
	"github.com/middleclass/localstore/internal/notify"
	"github.com/middleclass/localstore/internal/sched"
	"github.com/middleclass/localstore/internal/search"
	"github.com/middleclass/localstore/internal/session"
	"github.com/middleclass/localstore/internal/storage"
	httpserver "github.com/middleclass/localstore/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	ctx := context.Background()

	store, err := storage.Open(ctx, configuration)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}

	gate, err := session.NewGate(store, []byte(configuration.JWT_SECRET),
		configuration.ADMIN_EMAIL, configuration.ADMIN_PASSWORD)
	if err != nil {
		log.Fatalf("session gate init error: %v", err)
	}

	prod := events.NewProducer(configuration.KAFKA_ADDRESS)

	esClient, err := search.NewClient(configuration)
	if err != nil {
		log.Fatalf("search init error: %v", err)
	}
	index := &search.Index{ES: esClient, Name: "products"}

	scheduler := sched.New()
	notifier := notify.New(scheduler, notify.DefaultTTL)

	catalogStore := catalog.NewStore(store)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), logger)))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		ProductHandler:  &handlers.ProductHandler{Catalog: catalogStore, Index: index, Producer: prod, Notifier: notifier},
		CartHandler:     &handlers.CartHandler{KV: store, Producer: prod},
		AuthHandler:     &handlers.AuthHandler{Gate: gate, Notifier: notifier, Producer: prod},
		CurrencyHandler: &handlers.CurrencyHandler{},
		Gate:            &authmw.GateMiddleware{Gate: gate},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.LISTEN_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	scheduler.Stop()

	if closer, ok := store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Printf("storage close error: %v", err)
		}
	}

	if err := prod.Close(); err != nil {
		log.Printf("producer close error: %v", err)
	}

	log.Println("shutdown complete")
}
