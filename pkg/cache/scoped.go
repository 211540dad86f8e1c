package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several generators
// can share one Redis instance without seeing each other's entries.
//
//	keyer := cache.NewScopedKeyer(nil, "s7db:plant-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (the default keyer if nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SourceKey returns the prefixed key of the inner keyer.
func (k *ScopedKeyer) SourceKey(defHash string, opts SourceKeyOpts) string {
	return k.prefix + k.inner.SourceKey(defHash, opts)
}
