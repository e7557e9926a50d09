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

	"github.com/maksline/marketfront/internal/config"
	"github.com/maksline/marketfront/internal/events"
	"github.com/maksline/marketfront/internal/httpserver"
	"github.com/maksline/marketfront/internal/logging"
	"github.com/maksline/marketfront/internal/repo"
	"github.com/maksline/marketfront/internal/search"
	"github.com/maksline/marketfront/internal/seed"
	"github.com/maksline/marketfront/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	if err := seed.EnsureAdmin(db); err != nil {
		log.Fatalf("seed admin error: %v", err)
	}
	if configuration.SEED {
		if err := seed.Load(db); err != nil {
			log.Fatalf("seed error: %v", err)
		}
	}

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer(configuration.KAFKA_ADDRESS)
	}

	var index *search.Index
	if configuration.ES_URL != "" {
		index, err = search.NewIndex(configuration.ES_URL, configuration.ES_USER, configuration.ES_PASSWORD, search.DefaultIndex)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
	}

	r := repo.New(db)

	notifiers := []service.Notifier{&service.LogNotifier{Logger: logger}}
	if producer != nil {
		notifiers = append(notifiers, &service.KafkaNotifier{Producer: producer})
	}
	engine := &service.Engine{Repo: r, Notifiers: notifiers}

	jwtSecret := []byte(configuration.JWT_SECRET)
	cartSvc := &service.CartService{Repo: r}

	deps := httpserver.Deps{
		Repo:      r,
		JWTSecret: jwtSecret,
		Auth: &httpserver.AuthHandler{
			Svc:       &service.AuthService{Repo: r, Producer: producer, Automation: engine},
			JWTSecret: jwtSecret,
		},
		Catalog: &httpserver.CatalogHandler{
			Svc: &service.CatalogService{Repo: r, Automation: engine, Index: index, Producer: producer},
		},
		Cart: &httpserver.CartHandler{Svc: cartSvc},
		Order: &httpserver.OrderHandler{
			Svc: &service.OrderService{
				Repo:            r,
				Cart:            cartSvc,
				Automation:      engine,
				Producer:        producer,
				ProcessingDelay: time.Duration(configuration.CHECKOUT_DELAY_MS) * time.Millisecond,
			},
		},
		Shop: &httpserver.ShopHandler{Svc: &service.ShopService{Repo: r}},
		Admin: &httpserver.AdminHandler{
			Users:       &service.UserService{Repo: r},
			Shops:       &service.ShopService{Repo: r},
			Automations: &service.AutomationService{Repo: r},
		},
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	e.Validator = httpserver.NewValidator()

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
