package site

import "sync"

// Defaults is the mutable default-site context of a process: which family
// and language a bot edits when none is given. The resolver updates the
// default language when a single-language-family fallback rewrites the code
// the defaults point at. Callers opt into observing that side effect by
// passing their Defaults via WithDefaults.
type Defaults struct {
	mu       sync.Mutex
	family   string
	language string
}

// NewDefaults constructs a defaults context.
func NewDefaults(family, language string) *Defaults {
	return &Defaults{family: family, language: language}
}

// Family returns the default family name.
func (d *Defaults) Family() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.family
}

// Language returns the default language code.
func (d *Defaults) Language() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.language
}

// SetLanguage replaces the default language code.
func (d *Defaults) SetLanguage(code string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.language = code
}

// Matches reports whether a (family, code) request targets the current
// default site.
func (d *Defaults) Matches(family, code string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.family == family && d.language == code
}
