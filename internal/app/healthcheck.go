package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/vk/litemake/internal/ctxlog"
	"github.com/vk/litemake/internal/executor"
)

const (
	stateIdle     = "idle"
	stateBuilding = "building"
	stateFinished = "finished"
)

// buildStatus is the live progress served on /status.
type buildStatus struct {
	mu sync.Mutex

	State   string
	Target  string
	Targets []string
	Counts  executor.Counts
}

func (s *buildStatus) start(targets []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = stateBuilding
	s.Targets = targets
}

func (s *buildStatus) enter(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Target = target
}

func (s *buildStatus) add(r executor.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Counts.Add(r.Status)
}

func (s *buildStatus) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = stateFinished
	s.Target = ""
}

func (s *buildStatus) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Marshal(&struct {
		State   string          `json:"state"`
		Target  string          `json:"target,omitempty"`
		Targets []string        `json:"targets"`
		Counts  executor.Counts `json:"counts"`
	}{s.State, s.Target, s.Targets, s.Counts})
}

// healthHandler answers liveness probes.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// statusHandler reports the build progress as JSON.
func (a *App) statusHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Status endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.status); err != nil {
		a.logger.Error("Failed to encode build status", "error", err)
	}
}

func (a *App) healthMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/status", a.statusHandler)
	return mux
}

// healthCheckServer initializes and runs the health check HTTP server.
func (a *App) healthCheckServer(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Configuring health check server.")
	if a.config.HealthcheckPort <= 0 {
		logger.Debug("Health check server not started: disabled")
		return
	}

	addr := fmt.Sprintf(":%d", a.config.HealthcheckPort)
	a.httpServer = &http.Server{
		Addr:    addr,
		Handler: a.healthMux(),
	}

	go func() {
		logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
}

func (a *App) closeHealthCheckServer(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if a.httpServer == nil {
		logger.Debug("Health check server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down health check server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
		return err
	}

	logger.Debug("Health check server shut down gracefully.")
	return nil
}
