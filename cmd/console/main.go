// Command console is the back-office admin CLI. It signs in against the
// remote API, keeps the credential in durable storage between invocations,
// and drives the cart/order synchronization stores from subcommands.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"backoffice/internal/console"
	"backoffice/internal/platform/config"
	"backoffice/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.FromEnv()
	log := logger.New()

	store, err := console.OpenSessionStore(ctx, cfg)
	if err != nil {
		log.Error("session store unavailable", "error", err)
		os.Exit(1)
	}
	app := console.New(cfg, log, store)

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, app)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := dispatch(ctx, app, os.Args[1], os.Args[2:]); err != nil {
		log.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func serveMetrics(addr string, app *console.App) {
	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, router); err != nil {
		app.Log.Error("metrics listener failed", "error", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: console <command> [flags]

commands:
  login       sign in and persist the session
  logout      clear the session
  whoami      show the signed-in identity and token expiry
  cart        show | add | update | remove | clear
  orders      list | cancel | checkout
  products    list
  categories  list
  users       list
  image       upload`)
}

func dispatch(ctx context.Context, app *console.App, command string, args []string) error {
	switch command {
	case "login":
		return cmdLogin(ctx, app, args)
	case "logout":
		return app.Guard.Logout(ctx)
	case "whoami":
		return cmdWhoami(ctx, app)
	case "cart":
		return cmdCart(ctx, app, args)
	case "orders":
		return cmdOrders(ctx, app, args)
	case "products":
		return cmdProducts(ctx, app, args)
	case "categories":
		return cmdCategories(ctx, app, args)
	case "users":
		return cmdUsers(ctx, app, args)
	case "image":
		return cmdImage(ctx, app, args)
	}
	usage()
	return fmt.Errorf("unknown command %q", command)
}
