package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/s7db/pkg/cache"
	"github.com/matzehuels/s7db/pkg/datablock"
	"github.com/matzehuels/s7db/pkg/errors"
	pio "github.com/matzehuels/s7db/pkg/io"
	"github.com/matzehuels/s7db/pkg/observability"
)

const keyTypeSource = "source"

// Runner executes generation runs with caching.
//
// A Runner holds no per-run state, so one instance can serve concurrent
// requests as long as its cache is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the lifetime of cached sources.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the default keyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLSource,
	}
}

// Generate runs load → hash → render (or cache lookup) → write.
// Nothing is written when rendering fails.
func (r *Runner) Generate(ctx context.Context, opts Options) (res *Result, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	loadStart := time.Now()
	b, doc, err := load(opts)
	if err != nil {
		return nil, err
	}
	res = &Result{Block: b}
	res.Stats.Variables = b.Len()
	res.Stats.LoadTime = time.Since(loadStart)

	start := time.Now()
	observability.Generate().OnGenerateStart(ctx, b.Name())
	defer func() {
		observability.Generate().OnGenerateComplete(ctx, b.Name(), b.Len(), time.Since(start), err)
	}()

	var def bytes.Buffer
	if err := pio.WriteJSON(b, &def); err != nil {
		return nil, err
	}
	res.Hash = cache.Hash(def.Bytes())
	key := r.Keyer.SourceKey(res.Hash, cache.SourceKeyOpts{Version: datablock.Version})

	renderStart := time.Now()
	src, hit := r.lookup(ctx, key, opts.NoCache, logger)
	if !hit {
		if src, err = b.Serialize(); err != nil {
			return nil, err
		}
		r.store(ctx, key, src, opts.NoCache, logger)
	}
	res.Source = src
	res.CacheHit = hit
	res.Stats.Bytes = len(src)
	res.Stats.RenderTime = time.Since(renderStart)

	logger.Debug("rendered block",
		"block", b.Name(),
		"variables", b.Len(),
		"bytes", len(src),
		"cache_hit", hit,
		"duration", res.Stats.RenderTime)

	if opts.Write {
		path := outputPath(opts, doc, b)
		if err := writeSource(path, src); err != nil {
			return nil, err
		}
		res.Path = path
		logger.Info("wrote block", "block", b.Name(), "path", path)
	}
	return res, nil
}

// lookup returns the cached source for key. Cache failures are logged and
// treated as misses.
func (r *Runner) lookup(ctx context.Context, key string, noCache bool, logger *log.Logger) (string, bool) {
	if noCache {
		return "", false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "error", err)
		return "", false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeSource)
		return "", false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeSource)
	return string(data), true
}

func (r *Runner) store(ctx context.Context, key, src string, noCache bool, logger *log.Logger) {
	if noCache {
		return
	}
	if err := r.Cache.Set(ctx, key, []byte(src), r.TTL); err != nil {
		logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeSource, len(src))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func load(opts Options) (*datablock.Block, *pio.Document, error) {
	switch {
	case opts.Block != nil:
		return opts.Block, nil, nil
	case opts.Document != nil:
		b, err := opts.Document.Build()
		return b, opts.Document, err
	default:
		doc, err := pio.ImportFile(opts.Input)
		if err != nil {
			return nil, nil, err
		}
		b, err := doc.Build()
		if err != nil {
			return nil, nil, errors.New(errors.GetCode(err), "%s: %s", opts.Input, errors.UserMessage(err))
		}
		return b, doc, nil
	}
}

func outputPath(opts Options, doc *pio.Document, b *datablock.Block) string {
	path := opts.Output
	if path == "" && doc != nil {
		path = doc.Output
	}
	if path == "" {
		path = b.DefaultFilename()
	}
	if opts.OutputDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(opts.OutputDir, path)
	}
	return path
}

func writeSource(path, src string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "create directory %s", dir)
		}
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
