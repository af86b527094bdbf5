// Package models holds the persistable half of a site: the canonical
// identity data that survives a save/restore cycle. Runtime-only state
// (namespace caches, page locks) lives on site.Site and is rebuilt fresh.
package models

import "fmt"

// Identity is the canonical (code, family) pair identifying one wiki
// instance. Immutable after resolution.
type Identity struct {
	// Code is the canonical language code, always lowercase.
	Code string `json:"code"`

	// Family is the canonical family name.
	Family string `json:"family"`

	// Obsolete marks sites reached through a retired language code that
	// has no replacement. Such sites exist so callers can recognize them
	// and avoid write access.
	Obsolete bool `json:"obsolete,omitempty"`
}

// String returns the conventional family:code site name.
func (id Identity) String() string {
	return id.Family + ":" + id.Code
}

// Key returns the equality and ordering key. Two identities denote the same
// site iff their keys match; Obsolete is diagnostic state, not identity.
func (id Identity) Key() string {
	return id.Family + ":" + id.Code
}

// Equal reports whether two identities denote the same site.
func (id Identity) Equal(other Identity) bool {
	return id.Family == other.Family && id.Code == other.Code
}

// Less orders identities by (family, code), for stable listings.
func (id Identity) Less(other Identity) bool {
	if id.Family != other.Family {
		return id.Family < other.Family
	}
	return id.Code < other.Code
}

// UnknownSiteError reports that a requested (code, family) pair cannot be
// mapped to any valid site. Resolution is not retried; the caller must
// supply a different code or family.
type UnknownSiteError struct {
	Code   string
	Family string
}

func (e *UnknownSiteError) Error() string {
	return fmt.Sprintf("language %q does not exist in family %s", e.Code, e.Family)
}
