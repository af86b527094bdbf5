package site

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/suite"

	fmodels "wikisite/internal/family/models"
	"wikisite/internal/family/store"
	"wikisite/internal/namespace"
	dErrors "wikisite/pkg/domain-errors"
)

type SiteSuite struct {
	suite.Suite
	ctx      context.Context
	resolver *Resolver
	en       *Site
	de       *Site
}

func TestSiteSuite(t *testing.T) {
	suite.Run(t, new(SiteSuite))
}

func (s *SiteSuite) SetupTest() {
	s.ctx = context.Background()

	dir := store.NewMemory()
	s.Require().NoError(store.Seed(s.ctx, dir))

	resolver, err := New(dir)
	s.Require().NoError(err)
	s.resolver = resolver

	s.en, err = resolver.Resolve(s.ctx, "en", "wikipedia")
	s.Require().NoError(err)
	s.de, err = resolver.Resolve(s.ctx, "de", "wikipedia")
	s.Require().NoError(err)
}

func (s *SiteSuite) TestSameTitle() {
	tests := []struct {
		name   string
		title1 string
		title2 string
		same   bool
	}{
		{"identical", "Foo bar", "Foo bar", true},
		{"underscore separator", "Foo_bar", "Foo bar", true},
		{"repeated separators", "Foo__bar", "Foo bar", true},
		{"first letter folds", "foo", "Foo", true},
		{"later letters do not fold", "foo bar", "Foo Bar", false},
		{"different namespaces", "Category:Foo", "foo", false},
		{"namespace prefix case", "template:Foo", "Template:foo", true},
		{"local name case beyond first letter", "template:fOo", "Template:Foo", false},
		{"builtin namespace alias", "Image:Foo", "File:foo", true},
		{"custom namespace alias", "WP:Foo", "Wikipedia:foo", true},
		{"canonical and custom name", "Project:Foo", "Wikipedia:Foo", true},
		{"bare colon is literal", ":Foo", "Foo", false},
		{"unresolvable prefix stays literal", "unknown:Foo", "Unknown:Foo", true},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.same, s.en.SameTitle(tt.title1, tt.title2))
			s.Equal(tt.same, s.en.SameTitle(tt.title2, tt.title1), "equivalence must be symmetric")
		})
	}
}

func (s *SiteSuite) TestSameTitleLocalizedNamespaces() {
	s.True(s.de.SameTitle("Datei:Foo.jpg", "File:Foo.jpg"))
	s.True(s.de.SameTitle("Bild:Foo.jpg", "Datei:Foo.jpg"))
	s.True(s.de.SameTitle("Kategorie:Foo", "Category:foo"))
	s.False(s.en.SameTitle("Datei:Foo.jpg", "File:Foo.jpg"),
		"German names are not namespaces on the English site")
}

func (s *SiteSuite) TestResolveNamespace() {
	tests := []struct {
		name  string
		input string
		id    int
		ok    bool
	}{
		{"canonical", "Category", namespace.Category, true},
		{"case insensitive", "category", namespace.Category, true},
		{"builtin alias", "image", namespace.File, true},
		{"custom alias", "wp", namespace.Project, true},
		{"custom name", "Wikipedia", namespace.Project, true},
		{"unknown", "Portal", 0, false},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			id, ok := s.en.ResolveNamespace(tt.input)
			s.Equal(tt.ok, ok)
			if ok {
				s.Equal(tt.id, id)
			}
		})
	}
}

func (s *SiteSuite) TestLanguages() {
	langs := s.en.Languages()
	s.True(sort.StringsAreSorted(langs))
	s.Contains(langs, "en")
	s.Contains(langs, "ja")
	s.NotContains(langs, "dk", "obsolete aliases are not languages")
}

func (s *SiteSuite) TestValidLanguageLinks() {
	s.Run("no collisions on seeded wikipedia", func() {
		s.Equal(s.en.Languages(), s.en.ValidLanguageLinks())
	})

	s.Run("codes shadowed by a namespace are excluded", func() {
		dir := store.NewMemory()
		s.Require().NoError(dir.Create(s.ctx, &fmodels.Family{
			Name:      "testwiki",
			Languages: []string{"aa", "user"},
		}))
		resolver, err := New(dir)
		s.Require().NoError(err)

		site, err := resolver.Resolve(s.ctx, "aa", "testwiki")
		s.Require().NoError(err)
		s.Equal([]string{"aa"}, site.ValidLanguageLinks())
	})
}

func (s *SiteSuite) TestDisambiguationCategory() {
	title, err := s.en.DisambiguationCategory()
	s.Require().NoError(err)
	s.Equal("Category:Disambiguation pages", title)

	title, err = s.de.DisambiguationCategory()
	s.Require().NoError(err)
	s.Equal("Kategorie:Begriffsklärung", title, "title carries the localized namespace name")

	source, err := s.resolver.Resolve(s.ctx, "en", "wikisource")
	s.Require().NoError(err)
	_, err = source.DisambiguationCategory()
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *SiteSuite) TestDocSubpages() {
	s.Equal([]string{"/Doku", "/doc"}, s.de.DocSubpages())

	fr, err := s.resolver.Resolve(s.ctx, "fr", "wikipedia")
	s.Require().NoError(err)
	s.Equal([]string{"/doc"}, fr.DocSubpages(), "missing languages fall back to the family default")
}

func (s *SiteSuite) TestRedirectPattern() {
	s.Run("default keyword", func() {
		re := s.en.RedirectPattern("")
		m := re.FindStringSubmatch("#REDIRECT [[Foo bar]]")
		s.Require().Len(m, 2)
		s.Equal("Foo bar", m[1])
	})

	s.Run("case insensitive with colon and label", func() {
		re := s.en.RedirectPattern("")
		m := re.FindStringSubmatch("  #redirect: [[Foo|see there]]")
		s.Require().Len(m, 2)
		s.Equal("Foo", m[1])
	})

	s.Run("localized keyword", func() {
		re := s.de.RedirectPattern("WEITERLEITUNG")
		m := re.FindStringSubmatch("#weiterleitung [[Ziel]]")
		s.Require().Len(m, 2)
		s.Equal("Ziel", m[1])
	})

	s.Run("plain text does not match", func() {
		re := s.en.RedirectPattern("")
		s.Nil(re.FindStringSubmatch("This article mentions a redirect but is none."))
	})
}

func (s *SiteSuite) TestPageLocks() {
	s.Require().NoError(s.en.LockPage("Foo bar", false))
	s.Equal(1, s.en.LockedPages())

	s.Require().Error(s.en.LockPage("Foo_bar#History", false),
		"spelling variants of a held title stay locked")

	s.Require().NoError(s.de.LockPage("Foo bar", false),
		"locks are per site, not per process")

	s.en.UnlockPage("Foo bar")
	s.Zero(s.en.LockedPages())
	s.Require().NoError(s.en.LockPage("Foo bar", false))
	s.en.UnlockPage("Foo bar")
	s.de.UnlockPage("Foo bar")
}
