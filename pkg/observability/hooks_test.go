package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	g := NoopGenerateHooks{}
	g.OnGenerateStart(ctx, "test_db")
	g.OnGenerateComplete(ctx, "test_db", 7, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "source")
	c.OnCacheMiss(ctx, "source")
	c.OnCacheSet(ctx, "source", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/generate", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Generate() should return NoopGenerateHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customGenerate := &testGenerateHooks{}
	SetGenerateHooks(customGenerate)
	if Generate() != customGenerate {
		t.Error("SetGenerateHooks should set custom hooks")
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

	Reset()
	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Reset() should restore NoopGenerateHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testGenerateHooks{}
	SetGenerateHooks(custom)
	SetGenerateHooks(nil)
	if Generate() != custom {
		t.Error("SetGenerateHooks(nil) should keep the current hooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testGenerateHooks{}
	SetGenerateHooks(h)

	Generate().OnGenerateStart(context.Background(), "db")
	Generate().OnGenerateComplete(context.Background(), "db", 3, time.Millisecond, nil)

	if h.started != 1 || h.completed != 1 {
		t.Errorf("started, completed = %d, %d; want 1, 1", h.started, h.completed)
	}
	if h.lastVariables != 3 {
		t.Errorf("variables = %d, want 3", h.lastVariables)
	}
}

type testGenerateHooks struct {
	started, completed int
	lastVariables      int
}

func (h *testGenerateHooks) OnGenerateStart(context.Context, string) { h.started++ }
func (h *testGenerateHooks) OnGenerateComplete(_ context.Context, _ string, variables int, _ time.Duration, _ error) {
	h.completed++
	h.lastVariables = variables
}

type testCacheHooks struct{ NoopCacheHooks }

type testHTTPHooks struct{ NoopHTTPHooks }
