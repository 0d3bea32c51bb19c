package cache

// ScopedKeyer wraps a Keyer with a prefix, giving callers a disposable
// namespace. The service scopes all keys with a schema version so a change
// to the rendered byte format invalidates old entries wholesale instead of
// serving stale bytes.
//
// Example usage:
//
//	// All keys share the v1 namespace; bump to v2 to drop old entries.
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1:")
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

// RenderKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) RenderKey(content string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(content, opts)
}
