package transitapi

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Handler returns the API routing table.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", a.handleHealth)
	mux.HandleFunc("GET /api/networks", a.handleNetworks)
	mux.HandleFunc("GET /api/networks/{id}", a.handleNetwork)
	mux.HandleFunc("GET /api/networks/{id}/lines", a.handleNetworkLines)
	mux.HandleFunc("GET /api/lines/{id}", a.handleLine)
	mux.HandleFunc("GET /api/lines/{id}/directions", a.handleLineDirections)
	mux.HandleFunc("GET /api/disruptions", a.handleDisruptions)
	mux.HandleFunc("GET /api/disruptions/grouped", a.handleDisruptionsGrouped)
	mux.HandleFunc("GET /api/favorites/lines", a.handleListFavoriteLines)
	mux.HandleFunc("POST /api/favorites/lines", a.handleAddFavoriteLine)
	mux.HandleFunc("DELETE /api/favorites/lines", a.handleRemoveFavoriteLine)
	mux.HandleFunc("GET /api/favorites/networks", a.handleListFavoriteNetworks)
	mux.HandleFunc("GET /api/preferences", a.handleGetPreferences)
	mux.HandleFunc("PUT /api/preferences", a.handleSavePreferences)
	mux.HandleFunc("GET /api/leaderboard", a.handleLeaderboard)
	mux.HandleFunc("GET /api/forum/topics", a.handleForumTopics)
	mux.HandleFunc("POST /api/cache/invalidate", a.handleCacheInvalidate)
	return mux
}

// StartServer launches the HTTP server in the background.
func (a *App) StartServer() {
	addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

// RunMonitor runs the background disruption refresh until ctx is
// cancelled.
func (a *App) RunMonitor(ctx context.Context) {
	if len(a.cfg.Monitor.Networks) == 0 {
		return
	}
	a.monitor.Run(ctx)
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM, stops the
// background monitor via cancel, and drains the HTTP server.
func (a *App) HandleGracefulShutdown(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	cancel()
	ctx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
}
