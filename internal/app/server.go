package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"

	"github.com/vk/legcfg/internal/ctxlog"
	"github.com/vk/legcfg/internal/export"
)

// Handler returns the HTTP catalog:
//
//	GET /health                 "OK"
//	GET /robots                 JSON array of robot names
//	GET /robots/{name}?format=  one record, json by default
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("GET /robots", a.listHandler)
	mux.HandleFunc("GET /robots/{name}", a.robotHandler)
	return mux
}

// healthHandler answers liveness probes.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) listHandler(w http.ResponseWriter, r *http.Request) {
	data, err := jsoniter.Marshal(a.Registry().Names())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(append(data, '\n'))
}

func (a *App) robotHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	logger := a.logger.With("robot", name, "format", format)

	enc, err := export.ForFormat(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cfg, err := a.Registry().Lookup(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if a.config.PrimPath != "" {
		cfg = cfg.WithPrimPath(a.config.PrimPath)
	}

	w.Header().Set("Content-Type", enc.ContentType())
	if err := enc.Encode(w, cfg); err != nil {
		logger.Error("Failed to encode robot.", "error", err)
		return
	}
	logger.Debug("Robot served.")
}

// serve runs the HTTP catalog until ctx is cancelled. When robot files are
// configured they are watched and the catalog reloads on change.
func (a *App) serve(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	addr := fmt.Sprintf(":%d", a.config.ServePort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Catalog server starting", "address", fmt.Sprintf("http://localhost%s/robots", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("catalog server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("Shutting down catalog server...")
		return srv.Shutdown(shutdownCtx)
	})
	if len(a.config.ConfigPaths) > 0 {
		g.Go(func() error {
			return a.watch(gctx)
		})
	}

	return g.Wait()
}
