package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis instance without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArrangeKey generates a prefixed key for layout results.
func (k *ScopedKeyer) ArrangeKey(sceneHash string, opts ArrangeKeyOpts) string {
	return k.prefix + k.inner.ArrangeKey(sceneHash, opts)
}

// ExportKey generates a prefixed key for graph exports.
func (k *ScopedKeyer) ExportKey(sceneHash string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(sceneHash, opts)
}
