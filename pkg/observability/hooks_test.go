package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnPrepareStart(ctx, "render-1", "208")
	p.OnPrepareComplete(ctx, "render-1", time.Second, nil)
	p.OnRenderStart(ctx, "render-1", "canvas")
	p.OnRenderComplete(ctx, "render-1", "canvas", time.Second, nil)
	p.OnEncodeComplete(ctx, "render-1", 4096, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "asset")
	c.OnCacheMiss(ctx, "asset")
	c.OnCacheSet(ctx, "asset", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "cdn.example.com", "/backgrounds/beach.jpg")
	h.OnResponse(ctx, "GET", "cdn.example.com", "/backgrounds/beach.jpg", 200, time.Second)
	h.OnError(ctx, "GET", "cdn.example.com", "/backgrounds/beach.jpg", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

func TestRegisteredHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)

	Pipeline().OnRenderStart(context.Background(), "render-1", "svg")
	Pipeline().OnRenderComplete(context.Background(), "render-1", "svg", time.Millisecond, nil)

	if len(rec.backends) != 2 || rec.backends[0] != "svg" {
		t.Errorf("recorded backends = %v", rec.backends)
	}
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

type recordingPipelineHooks struct {
	NoopPipelineHooks
	backends []string
}

func (r *recordingPipelineHooks) OnRenderStart(_ context.Context, _, backend string) {
	r.backends = append(r.backends, backend)
}

func (r *recordingPipelineHooks) OnRenderComplete(_ context.Context, _, backend string, _ time.Duration, _ error) {
	r.backends = append(r.backends, backend)
}
