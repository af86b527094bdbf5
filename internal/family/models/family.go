package models

import (
	"fmt"
	"strings"

	"wikisite/internal/namespace"
)

// DefaultCodeCharacters is the character set language codes are expected to
// draw from. Codes outside it are logged as suspicious but not rejected;
// family files have historically carried odd codes.
const DefaultCodeCharacters = "abcdefghijklmnopqrstuvwxyz0123456789-"

// DocSubpagesDefaultKey indexes the family-wide fallback entry in
// DocSubpages, used for languages with no entry of their own.
const DocSubpagesDefaultKey = "_default"

// Family is the immutable-per-process configuration of one wiki family:
// which language codes exist, which are historical aliases, and the
// per-language customizations sites of this family carry.
type Family struct {
	Name      string   `json:"name"`
	Languages []string `json:"languages"`

	// Obsolete maps retired language codes to their replacement. An empty
	// replacement means the code was retired with no successor; sites
	// resolved through such a code are marked obsolete.
	Obsolete map[string]string `json:"obsolete,omitempty"`

	// NamespaceOverrides customizes namespaces per language code.
	NamespaceOverrides map[string][]namespace.Override `json:"namespace_overrides,omitempty"`

	// DisambCategories names the disambiguation category per language code,
	// without the Category: prefix.
	DisambCategories map[string]string `json:"disamb_categories,omitempty"`

	// DocSubpages lists documentation subpage names per language code, with
	// DocSubpagesDefaultKey as the family-wide fallback.
	DocSubpages map[string][]string `json:"doc_subpages,omitempty"`

	// CodeCharacters overrides DefaultCodeCharacters when set.
	CodeCharacters string `json:"code_characters,omitempty"`
}

// Validate checks the structural invariants a directory store relies on.
func (f *Family) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("family name is required")
	}
	if f.Name != strings.ToLower(f.Name) {
		return fmt.Errorf("family name %q must be lowercase", f.Name)
	}
	for _, code := range f.Languages {
		if code == "" {
			return fmt.Errorf("family %s has an empty language code", f.Name)
		}
	}
	return nil
}

// HasLanguage reports whether code is a valid language of this family.
func (f *Family) HasLanguage(code string) bool {
	for _, c := range f.Languages {
		if c == code {
			return true
		}
	}
	return false
}

// AliasFor looks code up in the obsolete-alias table. The second return
// reports presence; an empty replacement with ok=true means the code was
// retired outright.
func (f *Family) AliasFor(code string) (replacement string, ok bool) {
	replacement, ok = f.Obsolete[code]
	return replacement, ok
}

// IsSingleLanguage reports whether the family hosts exactly one language
// named after the family itself (e.g. commons, meta). Such families accept
// any requested code and fall back to the family name.
func (f *Family) IsSingleLanguage() bool {
	return len(f.Languages) == 1 && f.Languages[0] == f.Name
}

// AllowedCode reports whether every character of code is inside the
// family's allowed character set.
func (f *Family) AllowedCode(code string) bool {
	allowed := f.CodeCharacters
	if allowed == "" {
		allowed = DefaultCodeCharacters
	}
	for _, r := range code {
		if !strings.ContainsRune(allowed, r) {
			return false
		}
	}
	return true
}

// OverridesFor returns the namespace overrides for one language code.
func (f *Family) OverridesFor(code string) []namespace.Override {
	return f.NamespaceOverrides[code]
}

// DisambCategory returns the disambiguation category name for a language
// code, without namespace prefix.
func (f *Family) DisambCategory(code string) (string, bool) {
	name, ok := f.DisambCategories[code]
	return name, ok
}

// DocSubpagesFor returns the doc-subpage names for a language code. When the
// code has no entry of its own, the family default is returned and ok is
// false so the caller can log the gap.
func (f *Family) DocSubpagesFor(code string) (subpages []string, ok bool) {
	if pages, found := f.DocSubpages[code]; found {
		return pages, true
	}
	return f.DocSubpages[DocSubpagesDefaultKey], false
}
