package cache

import "strings"

// Keyer derives cache keys for each kind of cached value.
type Keyer interface {
	// HTTPKey is the key for a cached API response.
	HTTPKey(namespace, key string) string

	// ArtifactKey is the key for a rendered card.
	ArtifactKey(user string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render inputs that change the card's bytes.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Theme        string  `json:"theme"`
	TopLanguages int     `json:"top_languages"`
	ProgressBar  bool    `json:"progress_bar"`
	Scale        float64 `json:"scale"`
	CurveBase    float64 `json:"curve_base"`
	CurveGrowth  float64 `json:"curve_growth"`
	Tiers        string  `json:"tiers"` // hash of the rank title table
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ArtifactKey hashes the options so any render input change misses. GitHub
// logins are case-insensitive, so the user is lowercased.
func (DefaultKeyer) ArtifactKey(user string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+strings.ToLower(user), opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, keeping deployments
// that share a Redis instance apart.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(user string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(user, opts)
}
