package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"yemalin/internal/auth"
	"yemalin/internal/config"
	httpapi "yemalin/internal/http"
	"yemalin/internal/notify"
	"yemalin/internal/repository"
	"yemalin/internal/service"

	_ "yemalin/docs"
)

// @title Yemalin Storefront API
// @version 1.0
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type stores struct {
	users    repository.UserRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	tx       repository.TxManager
	close    func() error
}

func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	if cfg.DatabaseURL == "" {
		log.Printf("[INFO] DATABASE_URL is empty, using in-memory store")
		mem := repository.NewMemoryStore()
		return &stores{
			users:    repository.NewMemoryUsers(mem),
			products: mem,
			orders:   repository.NewMemoryOrders(mem),
			tx:       repository.NewMemoryTx(mem),
			close:    func() error { return nil },
		}, nil
	}
	db, err := repository.OpenSQL(cfg.DatabaseURL, cfg.SlowQueryThreshold)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("[INFO] connected to %s", db.Dialect())
	return &stores{
		users:    repository.NewSQLUsers(db),
		products: repository.NewSQLProducts(db),
		orders:   repository.NewSQLOrders(db),
		tx:       db,
		close:    db.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer st.close()

	carts, err := repository.OpenBoltCarts(cfg.CartDBPath)
	if err != nil {
		log.Fatalf("cart store: %v", err)
	}
	defer carts.Close()

	tokens, err := auth.NewTokenService(cfg.TokenConfig())
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}

	usersSvc := service.NewUserService(st.users, tokens, cfg.AdminEmails)
	productsSvc := service.NewProductService(st.products, st.tx)
	cartsSvc := service.NewCartService(carts, st.products)
	ordersSvc := service.NewOrderService(st.products, st.orders, st.tx, service.NewLedger(st.users, st.tx), cartsSvc).
		WithNotifier(notify.LogNotifier{})
	scheduler := service.NewReminderScheduler(carts, notify.LogNotifier{}, cfg.ReminderInterval)

	srv := httpapi.NewServer(usersSvc, tokens, productsSvc, ordersSvc, cartsSvc)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("[ERROR] server error: %v", err)
	}
	log.Printf("[INFO] stopped")
}
