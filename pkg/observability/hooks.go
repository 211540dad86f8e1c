// Package observability provides hooks for metrics, tracing and logging.
//
// Libraries emit events through the registered hooks; the defaults do
// nothing. Applications that want metrics register their own implementations
// once at startup:
//
//	func main() {
//	    observability.SetGenerateHooks(&myGenerateHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Generate().OnGenerateStart(ctx, block)
//	// ... render ...
//	observability.Generate().OnGenerateComplete(ctx, block, variables, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// GenerateHooks receives events from the source generation pipeline.
type GenerateHooks interface {
	OnGenerateStart(ctx context.Context, block string)
	OnGenerateComplete(ctx context.Context, block string, variables int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records a handled request.
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopGenerateHooks is a no-op implementation of GenerateHooks.
type NoopGenerateHooks struct{}

func (NoopGenerateHooks) OnGenerateStart(context.Context, string) {}
func (NoopGenerateHooks) OnGenerateComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

var (
	generateHooks GenerateHooks = NoopGenerateHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetGenerateHooks registers generation hooks. Nil is ignored.
func SetGenerateHooks(h GenerateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generateHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP server hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Generate returns the registered generation hooks.
func Generate() GenerateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generateHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP server hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generateHooks = NoopGenerateHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
