package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/coverage.report/internal/api"
	"github.com/banshee-data/coverage.report/internal/config"
	"github.com/banshee-data/coverage.report/internal/sim"
	"github.com/banshee-data/coverage.report/internal/version"
)

var (
	//go:embed static/*
	staticFiles embed.FS
	devMode     = flag.Bool("dev", false, "Run in dev mode")
	listen      = flag.String("listen", ":8080", "Listen address")
	configPath  = flag.String("config", config.DefaultConfigPath, "Path to tuning config JSON")
)

// staticHandler serves the frontend from the embedded filesystem in
// production or from the local ./static in dev for easier iteration
// without restarting the server.
func staticHandler(dev bool) http.Handler {
	if dev {
		return http.FileServer(http.Dir("./static"))
	}
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("failed to open embedded static files: %v", err)
	}
	return http.FileServer(http.FS(sub))
}

func main() {
	flag.Parse()

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	cfg, err := config.LoadTuningConfig(*configPath)
	if err != nil {
		log.Printf("tuning config: %v; using defaults", err)
		cfg = config.EmptyTuningConfig()
	}

	est := &sim.Estimator{
		Simulations: cfg.GetSimulations(),
		Workers:     cfg.GetWorkers(),
		Seed:        cfg.GetSeed(),
	}

	log.Printf("coverage.report %s (%s) listening on %s: %d simulations, grid cap %dx%d",
		version.Version, version.GitSHA, *listen,
		cfg.GetSimulations(), cfg.GetMaxGridRows(), cfg.GetMaxGridCols())

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := http.NewServeMux()

		apiSrv := api.NewServer(est, cfg.GetMaxGridRows(), cfg.GetMaxGridCols())
		mux.Handle("/api/", http.StripPrefix("/api", apiSrv.ServeMux()))
		apiSrv.AttachDebugRoutes(mux)
		mux.Handle("/", staticHandler(*devMode))

		server := &http.Server{
			Addr:    *listen,
			Handler: api.LoggingMiddleware(mux),
		}

		// Start server in a goroutine so it doesn't block
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		// Wait for context cancellation to shut down server
		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
