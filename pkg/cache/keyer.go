package cache

// Keyer derives cache keys for pipeline outputs.
type Keyer interface {
	// PageKey identifies one rendered page of a document build.
	PageKey(buildHash, destKey string) string

	// ArtifactKey identifies an exported artifact (pdf, json manifest).
	ArtifactKey(buildHash, format string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PageKey returns "page:<sha256>".
func (DefaultKeyer) PageKey(buildHash, destKey string) string {
	return hashKey("page", buildHash, destKey)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(buildHash, format string) string {
	return hashKey("artifact", buildHash, format)
}
