// Package namespace models the namespace table of one wiki site: the built-in
// namespaces every MediaWiki installation carries, per-family customizations
// on top of them, and name resolution over the combined table.
package namespace

import pstrings "wikisite/pkg/platform/strings"

// CaseMode is the title case-folding rule of a namespace.
type CaseMode string

const (
	// CaseFirstLetter folds only the first letter of a title when comparing.
	// This is the MediaWiki default.
	CaseFirstLetter CaseMode = "first-letter"

	// CaseSensitive compares titles verbatim.
	CaseSensitive CaseMode = "case-sensitive"
)

// Well-known namespace ids. Negative ids are virtual namespaces that have no
// stored pages.
const (
	Media         = -2
	Special       = -1
	Main          = 0
	Talk          = 1
	User          = 2
	UserTalk      = 3
	Project       = 4
	ProjectTalk   = 5
	File          = 6
	FileTalk      = 7
	MediaWiki     = 8
	MediaWikiTalk = 9
	Template      = 10
	TemplateTalk  = 11
	Help          = 12
	HelpTalk      = 13
	Category      = 14
	CategoryTalk  = 15
)

// Namespace describes one namespace of a site.
type Namespace struct {
	ID            int
	CanonicalName string
	// CustomName is the site-local name, e.g. "Wikipedia" for the Project
	// namespace on a Wikipedia-family site. Empty means the canonical name
	// is also the local one.
	CustomName string
	Aliases    []string
	Case       CaseMode
}

// Name returns the local name of the namespace: the custom name when the
// family defines one, otherwise the canonical name.
func (n *Namespace) Name() string {
	if n.CustomName != "" {
		return n.CustomName
	}
	return n.CanonicalName
}

// Names returns every name the namespace answers to, deduplicated, local
// name first.
func (n *Namespace) Names() []string {
	names := make([]string, 0, len(n.Aliases)+2)
	names = append(names, n.Name(), n.CanonicalName)
	names = append(names, n.Aliases...)
	return pstrings.DedupeAndTrim(names)
}

// Override customizes one namespace for a (family, language) pair. Overrides
// rename, alias or re-case namespaces; they can introduce extra namespaces
// (ids outside the builtin range) but never remove a builtin.
type Override struct {
	ID         int      `json:"id"`
	CustomName string   `json:"custom_name,omitempty"`
	Aliases    []string `json:"aliases,omitempty"`
	Case       CaseMode `json:"case,omitempty"`
	// CanonicalName is only honored for non-builtin ids; builtins keep
	// their canonical names so cross-site lookups stay stable.
	CanonicalName string `json:"canonical_name,omitempty"`
}

// Builtin returns the namespace set every site starts from. The main
// namespace has the empty canonical name; its local title prefix is no
// prefix at all.
func Builtin() []Namespace {
	return []Namespace{
		{ID: Media, CanonicalName: "Media", Case: CaseFirstLetter},
		{ID: Special, CanonicalName: "Special", Case: CaseFirstLetter},
		{ID: Main, CanonicalName: "", Case: CaseFirstLetter},
		{ID: Talk, CanonicalName: "Talk", Case: CaseFirstLetter},
		{ID: User, CanonicalName: "User", Case: CaseFirstLetter},
		{ID: UserTalk, CanonicalName: "User talk", Case: CaseFirstLetter},
		{ID: Project, CanonicalName: "Project", Case: CaseFirstLetter},
		{ID: ProjectTalk, CanonicalName: "Project talk", Case: CaseFirstLetter},
		{ID: File, CanonicalName: "File", Aliases: []string{"Image"}, Case: CaseFirstLetter},
		{ID: FileTalk, CanonicalName: "File talk", Aliases: []string{"Image talk"}, Case: CaseFirstLetter},
		{ID: MediaWiki, CanonicalName: "MediaWiki", Case: CaseFirstLetter},
		{ID: MediaWikiTalk, CanonicalName: "MediaWiki talk", Case: CaseFirstLetter},
		{ID: Template, CanonicalName: "Template", Case: CaseFirstLetter},
		{ID: TemplateTalk, CanonicalName: "Template talk", Case: CaseFirstLetter},
		{ID: Help, CanonicalName: "Help", Case: CaseFirstLetter},
		{ID: HelpTalk, CanonicalName: "Help talk", Case: CaseFirstLetter},
		{ID: Category, CanonicalName: "Category", Case: CaseFirstLetter},
		{ID: CategoryTalk, CanonicalName: "Category talk", Case: CaseFirstLetter},
	}
}
