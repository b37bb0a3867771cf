package compiler

import (
	"bytes"
	"context"
	"sync"
)

type safeWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *safeWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *safeWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

type fakeBackend struct {
	tools []string
}

func (f *fakeBackend) Name() string { return "fake" }
func (f *fakeBackend) CreateObject(context.Context, string, string, []string) error {
	return nil
}
func (f *fakeBackend) CreateArchive(context.Context, string, []string) error    { return nil }
func (f *fakeBackend) CreateExecutable(context.Context, string, []string) error { return nil }
func (f *fakeBackend) RequiredTools() []string                                 { return f.tools }
