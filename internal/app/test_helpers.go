package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/vk/litemake/internal/config"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing. Build output
// and logs are captured separately.
func SetupAppTest(t *testing.T, cfg Config, loader config.Loader, opts ...Option) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	cfg.LogLevel = "debug"
	appConfig, err := NewConfig(cfg)
	if err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	outBuffer := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	opts = append([]Option{WithLogWriter(logBuffer)}, opts...)
	testApp := NewApp(outBuffer, appConfig, loader, opts...)

	t.Cleanup(func() {
		if os.Getenv("LITEMAKE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
