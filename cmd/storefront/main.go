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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"

	"github.com/ashikwekenneth/Akawo-App/internal/account"
	"github.com/ashikwekenneth/Akawo-App/internal/auth"
	"github.com/ashikwekenneth/Akawo-App/internal/cart"
	"github.com/ashikwekenneth/Akawo-App/internal/catalog"
	"github.com/ashikwekenneth/Akawo-App/internal/domain"
	"github.com/ashikwekenneth/Akawo-App/internal/events"
	h "github.com/ashikwekenneth/Akawo-App/internal/http"
	"github.com/ashikwekenneth/Akawo-App/internal/storage"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`
	AppName  string `envconfig:"APP_NAME" default:"akawo"`

	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"memory"`
	RedisAddr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
	MongoURI       string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDBName    string `envconfig:"MONGO_DB_NAME" default:"storefront"`

	CatalogDBPath  string `envconfig:"CATALOG_DB_PATH"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"migrations"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"storefront-events"`

	JWTSecret     string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	MockLatency   time.Duration `envconfig:"MOCK_LATENCY" default:"300ms"`
	SearchDegrade bool          `envconfig:"SEARCH_DEGRADE"`

	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func main() {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	store, cleanup, err := buildStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to set up storage: %v", err)
	}
	defer cleanup()
	log.Printf("storage backend: %s", cfg.StorageBackend)

	catalogSvc, err := buildCatalog(cfg)
	if err != nil {
		log.Fatalf("failed to set up catalog: %v", err)
	}

	var engineOpts []catalog.EngineOption
	if cfg.SearchDegrade {
		engineOpts = append(engineOpts, catalog.WithDegradeOnError())
	}
	engine := catalog.NewEngine(catalogSvc, engineOpts...)

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		defer kp.Close()
		publisher = kp
		log.Printf("publishing events to %s via %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	}

	secret := []byte(cfg.JWTSecret)
	authSvc := auth.NewMockService(secret, cfg.MockLatency)
	demoUser := demoAccount()
	if err := authSvc.Seed(demoUser, "password123"); err != nil {
		log.Fatalf("failed to seed demo account: %v", err)
	}

	authStore := auth.NewStore(authSvc, store, storage.NewKeys(cfg.AppName, "session"), auth.WithPublisher(publisher))
	authStore.Load(ctx)

	cartStores := h.NewCartStores(func(owner string) *cart.Store {
		keys := storage.NewKeys(cfg.AppName, owner)
		return cart.NewStore(owner, store, keys, cart.WithPublisher(publisher))
	})

	accountSvc := account.NewMockService(catalogSvc, demoUser.ID, cfg.MockLatency)

	authHandler := h.NewAuthHandler(authStore, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(cartStores, catalogSvc, cfg.RequestTimeout)
	catalogHandler := h.NewCatalogHandler(engine, catalogSvc, cfg.RequestTimeout)
	accountHandler := h.NewAccountHandler(accountSvc, cfg.RequestTimeout)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.NewAuthMiddleware(secret))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/logout", authHandler.Logout)
		})
		r.Get("/me", authHandler.Me)
		r.Patch("/me", authHandler.UpdateMe)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Get("/totals", cartHandler.GetTotals)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Post("/coupons", cartHandler.ApplyCoupon)
			r.Delete("/coupons/{code}", cartHandler.RemoveCoupon)
		})

		r.Get("/products", catalogHandler.Search)
		r.Get("/products/{id}", catalogHandler.GetProduct)
		r.Get("/categories", catalogHandler.ListCategories)

		r.Route("/account", func(r chi.Router) {
			r.Get("/orders", accountHandler.ListOrders)
			r.Get("/orders/{id}", accountHandler.GetOrder)
			r.Get("/addresses", accountHandler.ListAddresses)
			r.Get("/payment-methods", accountHandler.ListPaymentMethods)
			r.Get("/favorites", accountHandler.ListFavorites)
			r.Get("/notifications", accountHandler.ListNotifications)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server stopped")
}

func buildStorage(ctx context.Context, cfg Config) (storage.Store, func(), error) {
	switch cfg.StorageBackend {
	case "memory":
		return storage.NewMemoryStore(), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		return storage.NewRedisStore(client), func() { client.Close() }, nil
	case "mongo":
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := db.Client().Disconnect(context.Background()); err != nil {
				log.Printf("failed to disconnect MongoDB: %v", err)
			}
		}
		return storage.NewMongoStore(db), cleanup, nil
	default:
		return nil, nil, errors.New("unknown storage backend: " + cfg.StorageBackend)
	}
}

func buildCatalog(cfg Config) (catalog.Service, error) {
	if cfg.CatalogDBPath == "" {
		return catalog.NewDemoService(cfg.MockLatency), nil
	}

	svc, err := catalog.NewSQLiteService(cfg.CatalogDBPath)
	if err != nil {
		return nil, err
	}
	if err := svc.RunMigrations(cfg.MigrationsPath); err != nil {
		return nil, err
	}
	log.Printf("catalog backed by sqlite at %s", cfg.CatalogDBPath)
	return svc, nil
}

func demoAccount() domain.User {
	now := time.Now()
	return domain.User{
		ID:                "user-demo",
		Email:             "demo@akawo.shop",
		FirstName:         "John",
		LastName:          "Doe",
		Role:              domain.RoleCustomer,
		Status:            domain.StatusActive,
		DefaultCurrency:   "USD",
		PreferredLanguage: "en",
		Preferences: domain.Preferences{
			Notifications: domain.NotificationPrefs{Email: true, Push: true},
			Marketing:     true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
