package site

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	fmodels "wikisite/internal/family/models"
	"wikisite/internal/namespace"
	"wikisite/internal/site/metrics"
	"wikisite/internal/site/models"
	"wikisite/internal/site/pagelock"
	dErrors "wikisite/pkg/domain-errors"
	pstrings "wikisite/pkg/platform/strings"
)

// Site is one wiki instance at runtime: a resolved identity plus the
// derived state that never leaves the process. The namespace table and doc
// subpage list are built once on first access; the lock registry is born
// empty and dies with the site.
type Site struct {
	id  models.Identity
	fam *fmodels.Family

	logger  *slog.Logger
	metrics *metrics.Metrics

	nsOnce sync.Once
	ns     *namespace.Set

	docOnce     sync.Once
	docSubpages []string

	locks *pagelock.Registry
}

func newSite(id models.Identity, fam *fmodels.Family, logger *slog.Logger, m *metrics.Metrics) *Site {
	return &Site{
		id:      id,
		fam:     fam,
		logger:  logger,
		metrics: m,
		locks:   pagelock.NewRegistry(pagelock.WithMetrics(m)),
	}
}

// Identity returns the persistable identity of the site. Save this, not the
// Site; a restored identity gets a fresh Site via Resolver.FromIdentity.
func (s *Site) Identity() models.Identity { return s.id }

// Code returns the canonical language code.
func (s *Site) Code() string { return s.id.Code }

// FamilyName returns the canonical family name.
func (s *Site) FamilyName() string { return s.id.Family }

// Obsolete reports whether the site was reached through a retired code.
func (s *Site) Obsolete() bool { return s.id.Obsolete }

func (s *Site) String() string { return s.id.String() }

// Namespaces returns the site's namespace table, building it on first use.
func (s *Site) Namespaces() *namespace.Set {
	s.nsOnce.Do(func() {
		s.ns = namespace.NewSet(s.fam.OverridesFor(s.id.Code))
	})
	return s.ns
}

// ResolveNamespace resolves a namespace name or alias to its id.
func (s *Site) ResolveNamespace(name string) (int, bool) {
	ns, ok := s.Namespaces().Lookup(name)
	if !ok {
		return 0, false
	}
	return ns.ID, true
}

// SameTitle reports whether two title strings denote the same page on this
// site. Titles may differ in separators, namespace aliases and, in
// first-letter namespaces, the case of the local name's first letter.
func (s *Site) SameTitle(title1, title2 string) bool {
	title1 = pstrings.CollapseSeparators(title1)
	title2 = pstrings.CollapseSeparators(title2)
	if title1 == title2 {
		return true
	}

	set := s.Namespaces()
	ns1, name1 := splitTitle(set, title1)
	ns2, name2 := splitTitle(set, title2)
	if ns1.ID != ns2.ID {
		// Pages in different namespaces, regardless of local names.
		return false
	}

	name1 = strings.TrimSpace(name1)
	name2 = strings.TrimSpace(name2)
	if ns1.Case == namespace.CaseFirstLetter {
		name1 = pstrings.FirstUpper(name1)
		name2 = pstrings.FirstUpper(name2)
	}
	return name1 == name2
}

// splitTitle separates a namespace prefix from the local name. A prefix
// that does not resolve to a real namespace is not a delimiter: the whole
// title, colon included, lives in the main namespace.
func splitTitle(set *namespace.Set, title string) (*namespace.Namespace, string) {
	if i := strings.IndexByte(title, ':'); i >= 0 {
		if ns, ok := set.Lookup(title[:i]); ok {
			return ns, title[i+1:]
		}
	}
	return set.Default(), title
}

// LockPage reserves a page title for writing. Must be called before any
// write; concurrent workflows must not write the same page, even different
// sections of it. With block=false a held page fails fast with
// pagelock.PageInUseError.
func (s *Site) LockPage(title string, block bool) error {
	return s.locks.Lock(title, block)
}

// UnlockPage releases a page title. Call as soon as the write completes.
// Never fails; releasing an unheld title is a no-op.
func (s *Site) UnlockPage(title string) {
	s.locks.Unlock(title)
}

// LockedPages returns the number of titles currently reserved.
func (s *Site) LockedPages() int {
	return s.locks.Held()
}

// Languages returns the valid language codes of the site's family, sorted.
func (s *Site) Languages() []string {
	codes := make([]string, len(s.fam.Languages))
	copy(codes, s.fam.Languages)
	sort.Strings(codes)
	return codes
}

// ValidLanguageLinks returns the language codes usable in interwiki links:
// codes that do not collide with a namespace name on this site.
func (s *Site) ValidLanguageLinks() []string {
	var codes []string
	for _, code := range s.Languages() {
		if _, clash := s.Namespaces().Lookup(code); !clash {
			codes = append(codes, code)
		}
	}
	return codes
}

// DisambiguationCategory returns the title of the category listing
// disambiguation pages, in the site's local Category namespace.
func (s *Site) DisambiguationCategory() (string, error) {
	name, ok := s.fam.DisambCategory(s.id.Code)
	if !ok {
		return "", dErrors.Newf(dErrors.CodeNotFound,
			"no disambiguation category name found for %s", s)
	}
	catNS, err := s.Namespaces().Describe(namespace.Category)
	if err != nil {
		return "", err
	}
	return catNS.Name() + ":" + name, nil
}

// DocSubpages returns the documentation subpage names for this site. A
// missing per-language entry falls back to the family default and is
// logged once as a family maintenance gap.
func (s *Site) DocSubpages() []string {
	s.docOnce.Do(func() {
		pages, ok := s.fam.DocSubpagesFor(s.id.Code)
		if !ok && s.logger != nil {
			s.logger.Warn("site language missing from family doc_subpages",
				"site", s.String(), "family", s.fam.Name)
		}
		s.docSubpages = pages
	})
	return s.docSubpages
}

// RedirectPattern returns a regexp matching redirect page sources for the
// given localized keyword ("REDIRECT" when empty). Group 1 captures the
// target title.
func (s *Site) RedirectPattern(keyword string) *regexp.Regexp {
	if keyword == "" {
		keyword = "REDIRECT"
	}
	// A redirect is a hash, the keyword, then a wikilink; the link label,
	// if any, is irrelevant.
	return regexp.MustCompile(fmt.Sprintf(`(?is)\s*#%s\s*:?\s*\[\[(.+?)(?:\|.*?)?\]\]`,
		regexp.QuoteMeta(keyword)))
}
