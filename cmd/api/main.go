package main

import (
	"context"
	"log"
	"time"

	"crafts-market/internal/core/config"
	"crafts-market/internal/core/logger"
	"crafts-market/internal/core/server"
	"crafts-market/internal/core/store"
	cartadapter "crafts-market/internal/features/cart/adapters"
	carthandler "crafts-market/internal/features/cart/handler"
	cartservice "crafts-market/internal/features/cart/service"
	catalogadapter "crafts-market/internal/features/catalog/adapters"
	cataloghandler "crafts-market/internal/features/catalog/handler"
	catalogservice "crafts-market/internal/features/catalog/service"
	checkoutadapter "crafts-market/internal/features/checkout/adapters"
	checkouthandler "crafts-market/internal/features/checkout/handler"
	checkoutservice "crafts-market/internal/features/checkout/service"
	invoiceadapter "crafts-market/internal/features/invoice/adapters"
	invoicehandler "crafts-market/internal/features/invoice/handler"
	invoiceservice "crafts-market/internal/features/invoice/service"
	profileadapter "crafts-market/internal/features/profile/adapters"
	profilehandler "crafts-market/internal/features/profile/handler"
	profileservice "crafts-market/internal/features/profile/service"

	"go.uber.org/zap"
)

// @title Crafts Market API
// @version 1.0
// @description Headless storefront API for a handmade crafts marketplace.
// @contact.name API Support
// @contact.email support@craftsmarket.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize the key-value store and verify connectivity
	kv, err := store.NewRedisAdapter(cfg.Store.RedisURL)
	if err != nil {
		l.Fatal("Failed to connect to store", zap.Error(err))
	}
	defer kv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := kv.Ping(ctx); err != nil {
		cancel()
		l.Fatal("Store health check failed", zap.Error(err))
	}
	cancel()
	l.Info("Store connection verified")

	// Catalog: file-backed source with debounced reloads
	source, err := catalogadapter.NewFileSource(cfg.Catalog.Path, time.Duration(cfg.Catalog.ReloadQuietMs)*time.Millisecond)
	if err != nil {
		l.Fatal("Failed to load catalog", zap.Error(err))
	}
	defer source.Close()
	catalogHdl := cataloghandler.NewCatalogHandler(catalogservice.NewCatalogService(source))

	// Cart
	rates, err := cartadapter.NewConfigShippingRates(cfg.Shipping)
	if err != nil {
		l.Fatal("Invalid shipping configuration", zap.Error(err))
	}
	cartRepo := cartadapter.NewRedisCartRepository(kv)
	cartHdl := carthandler.NewCartHandler(cartservice.NewCartService(cartRepo, rates))

	// Profile
	profileRepo := profileadapter.NewRedisProfileRepository(kv)
	profileHdl := profilehandler.NewProfileHandler(profileservice.NewProfileService(profileRepo))

	// Checkout
	orderRepo := checkoutadapter.NewRedisOrderRepository(kv)
	checkoutHdl := checkouthandler.NewCheckoutHandler(
		checkoutservice.NewCheckoutService(orderRepo, cartRepo, rates, profileRepo, nil))

	// Invoice: headless Chrome print-to-PDF
	exporter := invoiceadapter.NewRodExporter(cfg.Invoice.BrowserURL)
	invoiceHdl := invoicehandler.NewInvoiceHandler(invoiceservice.NewInvoiceService(orderRepo, exporter))

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/catalog", catalogHdl.Browse)

	srv.App.Get("/cart/:session", cartHdl.Get)
	srv.App.Post("/cart/:session/items", cartHdl.AddItem)
	srv.App.Put("/cart/:session/items/:index", cartHdl.SetQuantity)
	srv.App.Delete("/cart/:session/items/:index", cartHdl.RemoveItem)
	srv.App.Put("/cart/:session/shipping", cartHdl.SelectShipping)
	srv.App.Get("/cart/:session/totals", cartHdl.Totals)

	srv.App.Post("/checkout/:session", checkoutHdl.Submit)
	srv.App.Get("/checkout/:session/order", checkoutHdl.CurrentOrder)

	srv.App.Get("/invoice/:session/pdf", invoiceHdl.PDF)

	srv.App.Get("/profile/:session", profileHdl.Get)
	srv.App.Put("/profile/:session/account", profileHdl.UpdateAccount)
	srv.App.Post("/profile/:session/addresses", profileHdl.AddAddress)
	srv.App.Delete("/profile/:session/addresses/:index", profileHdl.RemoveAddress)
	srv.App.Post("/profile/:session/payment-methods", profileHdl.AddPaymentMethod)
	srv.App.Delete("/profile/:session/payment-methods/:index", profileHdl.RemovePaymentMethod)
	srv.App.Post("/profile/:session/login", profileHdl.Login)
	srv.App.Post("/profile/:session/logout", profileHdl.Logout)
	srv.App.Get("/profile/:session/status", profileHdl.Status)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
