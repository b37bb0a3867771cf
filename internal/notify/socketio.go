package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/vk/litemake/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultTimeout bounds the initial connection.
const DefaultTimeout = 5 * time.Second

// SocketIO emits events on a socket.io connection.
type SocketIO struct {
	io     *socket.Socket
	logger *slog.Logger
}

// Dial connects to rawURL, whose path selects the socket.io endpoint and
// whose fragment, if any, selects the namespace.
func Dial(ctx context.Context, rawURL string, timeout time.Duration) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("component", "notify", "url", rawURL)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse events URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("events URL %q must be absolute", rawURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))
	opts.SetReconnection(false)

	namespace := "/" + parsedURL.Fragment
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to event listener", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	logger.Debug("Connecting to event listener")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &SocketIO{io: io, logger: logger}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

func (s *SocketIO) Publish(_ context.Context, event string, data map[string]any) {
	if err := s.io.Emit(event, data); err != nil {
		s.logger.Warn("Failed to emit build event", "event", event, "error", err)
	}
}

func (s *SocketIO) Close() {
	s.logger.Debug("Disconnecting from event listener")
	s.io.Disconnect()
}

// Connect dials rawURL and falls back to Noop when it is empty or
// unreachable. A failed connection is logged and never returned.
func Connect(ctx context.Context, rawURL string, timeout time.Duration) Publisher {
	if rawURL == "" {
		return Noop{}
	}
	p, err := Dial(ctx, rawURL, timeout)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Build events disabled", "url", rawURL, "error", err)
		return Noop{}
	}
	return p
}
