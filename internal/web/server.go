package web

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cvforge/internal/config"
	"cvforge/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// NewServer creates and configures the HTTP server for the cvforge
// editor API and print preview.
func NewServer(st *store.Store, database *sql.DB, cfg *config.Config, version string) *http.Server {
	// Create sub-FS for templates (strip "templates/" prefix)
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		log.Fatalf("failed to create template sub-FS: %v", err)
	}

	// Create sub-FS for static files (strip "static/" prefix)
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to create static sub-FS: %v", err)
	}

	renderer := NewRenderer(templateSub, version)

	h := &Handlers{
		store:    st,
		db:       database,
		cfg:      cfg,
		renderer: renderer,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/preview", http.StatusFound)
	})
	mux.HandleFunc("GET /preview", h.HandlePreview)
	mux.HandleFunc("GET /export", h.HandleExport)

	mux.HandleFunc("GET /api/state", h.HandleGetState)
	mux.HandleFunc("PUT /api/state", h.HandleImport)
	mux.HandleFunc("POST /api/reset", h.HandleReset)
	mux.HandleFunc("PATCH /api/profile", h.HandlePatchProfile)
	mux.HandleFunc("PATCH /api/ui", h.HandlePatchUI)
	mux.HandleFunc("PUT /api/jd", h.HandleSetJD)
	mux.HandleFunc("GET /api/match", h.HandleMatch)
	mux.HandleFunc("GET /api/history", h.HandleHistory)
	mux.HandleFunc("POST /api/history/{id}/restore", h.HandleRestore)

	mux.HandleFunc("POST /api/{section}", h.HandleAddEntry)
	mux.HandleFunc("PATCH /api/{section}/{id}", h.HandlePatchEntry)
	mux.HandleFunc("DELETE /api/{section}/{id}", h.HandleRemoveEntry)
	mux.HandleFunc("POST /api/{section}/{id}/move", h.HandleMoveEntry)

	// Static file server
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	// Wrap with security headers
	handler := securityHeaders(mux)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
// Inline styles are allowed: the preview injects accent color and font
// sizing as CSS variables on the page element.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; font-src https://fonts.gstatic.com")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on
// SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("cvforge editor running at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
