package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"storefront/catalog"
	"storefront/controllers"
	"storefront/middleware"
	"storefront/repository"
	"storefront/routes"
	"storefront/session"
	"storefront/utils"
)

type stores struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
}

func main() {
	cfg := utils.LoadConfig()

	logger, err := utils.NewLogger(cfg.Production())
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.DotEnvLoaded {
		zap.S().Info("No .env file found. Proceeding with environment variables.")
	}
	if err := cfg.Validate(); err != nil {
		zap.L().Fatal("invalid configuration", zap.Error(err))
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, client, err := openStores(ctx, cfg)
	if err != nil {
		zap.L().Fatal("storage unavailable", zap.String("storage", cfg.Storage), zap.Error(err))
	}
	if client != nil {
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				zap.L().Error("mongo disconnect", zap.Error(err))
			}
		}()
	}

	if cfg.SeedOnStart {
		seedCatalog(ctx, cfg, st.products)
	}

	carts := session.NewManager(cfg.SessionTTL)
	if err := carts.Start("@every 1m"); err != nil {
		zap.L().Fatal("session sweeper", zap.Error(err))
	}
	defer carts.Stop()

	router := mux.NewRouter()
	routes.RegisterRoutes(router, routes.Controllers{
		Users:    controllers.NewUserController(st.users),
		Products: controllers.NewProductController(st.products),
		Cart:     controllers.NewCartController(carts, st.products, cfg.MaxStockDefault),
		Orders:   controllers.NewOrderController(carts, st.orders, utils.NewMailer(cfg.SendGridAPIKey, cfg.EmailSender)),
	}, middleware.NewSessions(cfg.SessionKey, cfg.Production(), int(cfg.SessionTTL.Seconds())))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zap.L().Info("Server is running", zap.String("port", cfg.Port), zap.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("shutdown", zap.Error(err))
	}
}

func openStores(ctx context.Context, cfg utils.Config) (stores, *mongo.Client, error) {
	if cfg.Storage == "memory" {
		return stores{
			products: repository.NewMemoryProducts(),
			orders:   repository.NewMemoryOrders(),
			users:    repository.NewMemoryUsers(),
		}, nil, nil
	}
	client, err := utils.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		return stores{}, nil, err
	}
	db := client.Database(cfg.DBName)
	return stores{
		products: repository.NewProductStore(db),
		orders:   repository.NewOrderStore(db),
		users:    repository.NewUserStore(db),
	}, client, nil
}

// seedCatalog imports PRODUCTS_FILE into an empty catalog. A missing file is
// not fatal.
func seedCatalog(ctx context.Context, cfg utils.Config, products repository.ProductRepository) {
	if _, err := os.Stat(cfg.ProductsFile); err != nil {
		zap.L().Info("no products file, skipping seed", zap.String("file", cfg.ProductsFile))
		return
	}
	records, err := catalog.LoadFile(cfg.ProductsFile)
	if err != nil {
		zap.L().Error("load products file", zap.Error(err))
		return
	}
	sum, err := catalog.NewImporter(products, zap.L()).Seed(ctx, records)
	if err != nil {
		zap.L().Error("seed catalog", zap.Error(err))
		return
	}
	zap.L().Info("catalog seed finished",
		zap.Int("imported", sum.Succeeded), zap.Int("failed", sum.Failed), zap.Int("skipped", sum.Skipped))
}
