package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type captureRenderHooks struct {
	starts    int
	completes int
	lastErr   error
}

func (h *captureRenderHooks) OnRenderStart(context.Context, string, int) { h.starts++ }
func (h *captureRenderHooks) OnRenderComplete(_ context.Context, _ string, _ time.Duration, err error) {
	h.completes++
	h.lastErr = err
}

type captureStoreHooks struct {
	saves, loads, deletes int
	lastFound             bool
}

func (h *captureStoreHooks) OnSave(context.Context, string, int) { h.saves++ }
func (h *captureStoreHooks) OnLoad(_ context.Context, _ string, found bool) {
	h.loads++
	h.lastFound = found
}
func (h *captureStoreHooks) OnDelete(context.Context, string) { h.deletes++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	// Must not panic.
	Document().OnMutate(context.Background(), "d", "rename")
	Render().OnRenderStart(context.Background(), "d", 3)
	Render().OnRenderComplete(context.Background(), "d", time.Millisecond, nil)
	Store().OnSave(context.Background(), "d", 128)
}

func TestSetRenderHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &captureRenderHooks{}
	SetRenderHooks(h)

	wantErr := errors.New("boom")
	Render().OnRenderStart(context.Background(), "d", 1)
	Render().OnRenderComplete(context.Background(), "d", time.Millisecond, wantErr)

	if h.starts != 1 || h.completes != 1 {
		t.Errorf("starts = %d, completes = %d, want 1, 1", h.starts, h.completes)
	}
	if !errors.Is(h.lastErr, wantErr) {
		t.Errorf("lastErr = %v, want %v", h.lastErr, wantErr)
	}
}

func TestSetStoreHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &captureStoreHooks{}
	SetStoreHooks(h)

	Store().OnSave(context.Background(), "d", 10)
	Store().OnLoad(context.Background(), "d", true)
	Store().OnDelete(context.Background(), "d")

	if h.saves != 1 || h.loads != 1 || h.deletes != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", h.saves, h.loads, h.deletes)
	}
	if !h.lastFound {
		t.Error("lastFound = false, want true")
	}
}

func TestSetHooks_NilIgnored(t *testing.T) {
	t.Cleanup(Reset)

	SetRenderHooks(nil)
	SetStoreHooks(nil)
	SetDocumentHooks(nil)

	// Still the no-op defaults; must not panic.
	Render().OnRenderStart(context.Background(), "d", 0)
	Store().OnLoad(context.Background(), "d", false)
	Document().OnMutate(context.Background(), "d", "op")
}

func TestReset(t *testing.T) {
	h := &captureStoreHooks{}
	SetStoreHooks(h)
	Reset()

	Store().OnSave(context.Background(), "d", 0)
	if h.saves != 0 {
		t.Error("hook still registered after Reset")
	}
}
