package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Several preview servers sharing one Redis use different prefixes so their
// entries can be cleared independently.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "planbook:")
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

// PageKey generates a prefixed page key.
func (k *ScopedKeyer) PageKey(buildHash, destKey string) string {
	return k.prefix + k.inner.PageKey(buildHash, destKey)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(buildHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(buildHash, format)
}
