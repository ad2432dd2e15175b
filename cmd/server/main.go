package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"driftworld/internal/api"
	"driftworld/internal/config"
	"driftworld/internal/logging"
	"driftworld/internal/lore"
	"driftworld/internal/transport/ws"
	"driftworld/internal/world"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		seed       = flag.Int64("seed", 0, "world seed (overrides tuning when nonzero)")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (empty: built-in defaults)")
	)
	flag.Parse()

	logger := logging.Init()

	cfg := config.Defaults()
	if tp := strings.TrimSpace(*tuningPath); tp != "" {
		loaded, err := config.Load(tp)
		if err != nil {
			logger.Fatal("load tuning", "path", tp, "error", err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	loreClient := lore.NewClient(os.Getenv("LORE_API_URL"), os.Getenv("LORE_API_KEY"), logger)
	scanner := world.NewScanner(loreClient, logger)

	w := world.New(cfg, scanner, logger)
	logger.Info("world ready", "seed", cfg.Seed, "chunks", w.LoadedChunks())

	ctx, cancel := signalContext()
	defer cancel()

	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("simulation stopped", "error", err)
		}
	}()

	wsServer, err := ws.NewServer(w, logger)
	if err != nil {
		logger.Fatal("websocket server", "error", err)
	}

	// The websocket endpoint lives outside the API router so its long-lived
	// connections dodge the request timeout middleware.
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", wsServer.Handler())
	mux.Handle("/", api.SetupRoutes(api.NewHandler(w, logger)))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Info("listening", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("listen", "error", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
