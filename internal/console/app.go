// Package console wires the SDK together: configuration, gateway, session
// guard, resource clients and synchronization stores. It also owns the one
// top-level subscription to the gateway's session-invalidated signal.
package console

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"backoffice/internal/client"
	"backoffice/internal/gateway"
	"backoffice/internal/platform/config"
	"backoffice/internal/platform/metrics"
	"backoffice/internal/session"
	cartstore "backoffice/internal/store/cart"
	orderstore "backoffice/internal/store/orders"
)

// App is the assembled application. Components are exported so commands (and
// tests) reach them directly; ownership rules still hold — only the stores
// mutate their snapshots, only the guard mutates credential state.
type App struct {
	Log      *slog.Logger
	Registry *prometheus.Registry

	Gateway *gateway.Client
	Guard   *session.Guard

	Auth       *client.Auth
	Products   *client.Products
	Categories *client.Categories
	Users      *client.Users
	Images     *client.Images

	Cart   *cartstore.Store
	Orders *orderstore.Store
}

// New assembles an App on top of the given session store. The store decides
// where credentials live (file, redis, memory); everything else follows from
// the config.
func New(cfg config.Config, log *slog.Logger, store session.Store) *App {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	gw := gateway.New(cfg.APIBaseURL, cfg.HTTPTimeout, session.NewTokenSource(store), log,
		gateway.WithMetrics(m))

	auth := client.NewAuth(gw)
	images := client.NewImages(gw)
	guard := session.NewGuard(store, auth, images, log)

	cart := cartstore.New(client.NewCart(gw), log)
	orders := orderstore.New(client.NewOrders(gw), log)

	// Teardown must be exhaustive: a later login as a different identity must
	// never see this session's snapshots.
	guard.OnReset(cart.Reset)
	guard.OnReset(orders.Reset)

	// The single subscriber for the credential-rejected signal. The gateway
	// itself stays free of storage concerns.
	gw.OnSessionInvalidated(guard.HandleInvalidation)

	return &App{
		Log:        log,
		Registry:   registry,
		Gateway:    gw,
		Guard:      guard,
		Auth:       auth,
		Products:   client.NewProducts(gw),
		Categories: client.NewCategories(gw),
		Users:      client.NewUsers(gw),
		Images:     images,
		Cart:       cart,
		Orders:     orders,
	}
}

// OpenSessionStore builds the credential store selected by the config.
func OpenSessionStore(ctx context.Context, cfg config.Config) (session.Store, error) {
	switch cfg.SessionBackend {
	case "file", "":
		return session.NewFileStore(cfg.SessionFile), nil
	case "redis":
		store, err := session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis session store: %w", err)
		}
		return store, nil
	case "memory":
		return session.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
}
