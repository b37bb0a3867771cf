package app

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/vk/litemake/internal/compiler"
	"github.com/vk/litemake/internal/config"
	"github.com/vk/litemake/internal/notify"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logW      io.Writer
	logger    *slog.Logger
	config    *Config
	loader    config.Loader
	runner    compiler.Runner
	publisher notify.Publisher

	httpServer *http.Server
	status     *buildStatus
}

// Option customizes an App.
type Option func(*App)

// WithLogWriter sends logs to w instead of stderr.
func WithLogWriter(w io.Writer) Option {
	return func(a *App) { a.logW = w }
}

// WithRunner replaces the subprocess runner of the selected toolchain.
func WithRunner(r compiler.Runner) Option {
	return func(a *App) { a.runner = r }
}

// WithPublisher replaces the socket.io publisher selected by EventsURL.
func WithPublisher(p notify.Publisher) Option {
	return func(a *App) { a.publisher = p }
}

// NewApp is the constructor for the main application. Build output goes to
// outW and logs to stderr unless WithLogWriter is given.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) *App {
	a := &App{
		outW:   &lockedWriter{w: outW},
		logW:   os.Stderr,
		config: cfg,
		loader: loader,
		status: &buildStatus{State: stateIdle},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, a.logW)
	a.logger.Debug("Logger configured successfully.")
	return a
}

// lockedWriter serializes writes from the progress printer, the verbose
// command echo and the pool workers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
