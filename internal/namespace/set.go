package namespace

import (
	"sort"
	"strings"

	dErrors "wikisite/pkg/domain-errors"
	pstrings "wikisite/pkg/platform/strings"
)

// Set is the immutable namespace table of one site. Build it once per site
// and share it freely; all methods are safe for concurrent readers.
type Set struct {
	byID   map[int]*Namespace
	byName map[string]int
}

// NewSet combines the builtin namespaces with family overrides. An override
// for a builtin id may rename, alias or re-case it; an override with an
// unknown id adds a new namespace. Builtins are never removed.
func NewSet(overrides []Override) *Set {
	s := &Set{
		byID:   make(map[int]*Namespace),
		byName: make(map[string]int),
	}

	for _, ns := range Builtin() {
		n := ns
		s.byID[n.ID] = &n
	}

	for _, ov := range overrides {
		n, ok := s.byID[ov.ID]
		if !ok {
			n = &Namespace{ID: ov.ID, CanonicalName: ov.CanonicalName, Case: CaseFirstLetter}
			s.byID[ov.ID] = n
		}
		if ov.CustomName != "" {
			n.CustomName = ov.CustomName
		}
		if len(ov.Aliases) > 0 {
			n.Aliases = pstrings.DedupeAndTrim(append(n.Aliases, ov.Aliases...))
		}
		if ov.Case != "" {
			n.Case = ov.Case
		}
	}

	for _, n := range s.byID {
		for _, name := range n.Names() {
			s.byName[normalizeName(name)] = n.ID
		}
	}

	return s
}

// normalizeName maps a namespace name to its lookup key: separators
// collapsed, trimmed, lowercased.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(pstrings.CollapseSeparators(name)))
}

// Lookup resolves a namespace name, alias or normalized form ("user_talk",
// "User  Talk") to its descriptor. The empty name never matches: the main
// namespace has no prefix, so a bare leading colon is not a namespace
// delimiter.
func (s *Set) Lookup(name string) (*Namespace, bool) {
	key := normalizeName(name)
	if key == "" {
		return nil, false
	}
	id, ok := s.byName[key]
	if !ok {
		return nil, false
	}
	return s.byID[id], true
}

// Describe returns the descriptor for a namespace id. An unknown id is a
// configuration or programmer error, not user input, so this is a hard
// error rather than a nil return.
func (s *Set) Describe(id int) (*Namespace, error) {
	n, ok := s.byID[id]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "namespace %d is not defined on this site", id)
	}
	return n, nil
}

// Default returns the main (article) namespace.
func (s *Set) Default() *Namespace {
	return s.byID[Main]
}

// All returns the namespaces ordered by id.
func (s *Set) All() []*Namespace {
	out := make([]*Namespace, 0, len(s.byID))
	for _, n := range s.byID {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of namespaces in the set.
func (s *Set) Len() int { return len(s.byID) }
