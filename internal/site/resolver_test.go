package site

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"wikisite/internal/family/mocks"
	fmodels "wikisite/internal/family/models"
	"wikisite/internal/site/models"
	dErrors "wikisite/pkg/domain-errors"
	"wikisite/pkg/platform/audit"
	auditmem "wikisite/pkg/platform/audit/store/memory"
	"wikisite/pkg/platform/sentinel"
)

type ResolverSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	dir      *mocks.MockDirectory
	events   *auditmem.InMemoryStore
	resolver *Resolver
	ctx      context.Context
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.dir = mocks.NewMockDirectory(s.ctrl)
	s.events = auditmem.NewInMemoryStore()
	s.ctx = context.Background()

	resolver, err := New(s.dir, WithAuditPublisher(s.events))
	s.Require().NoError(err)
	s.resolver = resolver
}

func (s *ResolverSuite) TearDownTest() {
	s.ctrl.Finish()
}

func wikipediaFamily() *fmodels.Family {
	return &fmodels.Family{
		Name:      "wikipedia",
		Languages: []string{"en", "de", "fr", "da", "no", "yue"},
		Obsolete: map[string]string{
			"dk": "da",
			"mo": "",
		},
	}
}

func commonsFamily() *fmodels.Family {
	return &fmodels.Family{Name: "commons", Languages: []string{"commons"}}
}

func (s *ResolverSuite) expectWikipedia() {
	s.dir.EXPECT().Find(gomock.Any(), "wikipedia").Return(wikipediaFamily(), nil).AnyTimes()
}

func (s *ResolverSuite) TestNewRequiresDirectory() {
	_, err := New(nil)
	s.Require().Error(err)
}

func (s *ResolverSuite) TestResolveValidCode() {
	s.expectWikipedia()

	site, err := s.resolver.Resolve(s.ctx, "en", "wikipedia")
	s.Require().NoError(err)
	s.Equal("en", site.Code())
	s.Equal("wikipedia", site.FamilyName())
	s.False(site.Obsolete())
	s.Equal("wikipedia:en", site.String())
}

func (s *ResolverSuite) TestResolveLowercasesCode() {
	s.expectWikipedia()

	upper, err := s.resolver.Resolve(s.ctx, "EN", "wikipedia")
	s.Require().NoError(err)
	s.Equal("en", upper.Code())

	lower, err := s.resolver.Resolve(s.ctx, "en", "wikipedia")
	s.Require().NoError(err)
	s.Same(lower, upper, "case variants of one code must share one site")
}

func (s *ResolverSuite) TestObsoleteAliasRedirects() {
	s.expectWikipedia()

	site, err := s.resolver.Resolve(s.ctx, "dk", "wikipedia")
	s.Require().NoError(err)
	s.Equal("da", site.Code())
	s.False(site.Obsolete())

	canonical, err := s.resolver.Resolve(s.ctx, "da", "wikipedia")
	s.Require().NoError(err)
	s.Same(canonical, site, "alias and replacement must share one site")

	events, err := s.events.ListByFamily(s.ctx, "wikipedia")
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.EventAliasRedirect, events[0].Action)
	s.Equal("dk", events[0].Code)
	s.Equal("da", events[0].Detail)
}

func (s *ResolverSuite) TestRetiredCodeMarksObsolete() {
	s.expectWikipedia()

	site, err := s.resolver.Resolve(s.ctx, "mo", "wikipedia")
	s.Require().NoError(err)
	s.Equal("mo", site.Code(), "a retired code without successor keeps its code")
	s.True(site.Obsolete())

	events, err := s.events.ListByFamily(s.ctx, "wikipedia")
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.EventObsoleteCode, events[0].Action)
}

func (s *ResolverSuite) TestUnknownCode() {
	s.expectWikipedia()

	_, err := s.resolver.Resolve(s.ctx, "xx", "wikipedia")
	s.Require().Error(err)

	var unknown *models.UnknownSiteError
	s.Require().ErrorAs(err, &unknown)
	s.Equal("xx", unknown.Code)
	s.Equal("wikipedia", unknown.Family)
}

func (s *ResolverSuite) TestUnknownFamily() {
	s.dir.EXPECT().Find(gomock.Any(), "wikivoyage").
		Return(nil, fmt.Errorf("family not found: %w", sentinel.ErrNotFound))

	_, err := s.resolver.Resolve(s.ctx, "en", "wikivoyage")
	s.Require().Error(err)

	var unknown *models.UnknownSiteError
	s.Require().ErrorAs(err, &unknown)
	s.Equal("wikivoyage", unknown.Family)
}

func (s *ResolverSuite) TestDirectoryFailure() {
	s.dir.EXPECT().Find(gomock.Any(), "wikipedia").
		Return(nil, fmt.Errorf("connection refused"))

	_, err := s.resolver.Resolve(s.ctx, "en", "wikipedia")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ResolverSuite) TestSingleLanguageFallback() {
	s.dir.EXPECT().Find(gomock.Any(), "commons").Return(commonsFamily(), nil).AnyTimes()

	s.Run("any code falls back to the family name", func() {
		site, err := s.resolver.Resolve(s.ctx, "en", "commons")
		s.Require().NoError(err)
		s.Equal("commons", site.Code())
		s.False(site.Obsolete())
	})

	s.Run("matching defaults follow the adopted code", func() {
		defaults := NewDefaults("commons", "de")
		resolver, err := New(s.dir, WithDefaults(defaults), WithAuditPublisher(s.events))
		s.Require().NoError(err)

		_, err = resolver.Resolve(s.ctx, "de", "commons")
		s.Require().NoError(err)
		s.Equal("commons", defaults.Language())
	})

	s.Run("non-matching defaults stay untouched", func() {
		defaults := NewDefaults("wikipedia", "en")
		resolver, err := New(s.dir, WithDefaults(defaults))
		s.Require().NoError(err)

		_, err = resolver.Resolve(s.ctx, "fr", "commons")
		s.Require().NoError(err)
		s.Equal("en", defaults.Language())
	})
}

func (s *ResolverSuite) TestResolveMemoizes() {
	s.dir.EXPECT().Find(gomock.Any(), "wikipedia").Return(wikipediaFamily(), nil).Times(1)

	first, err := s.resolver.Resolve(s.ctx, "en", "wikipedia")
	s.Require().NoError(err)

	second, err := s.resolver.Resolve(s.ctx, "en", "wikipedia")
	s.Require().NoError(err)
	s.Same(first, second)
}

func (s *ResolverSuite) TestFromIdentityStartsCold() {
	s.expectWikipedia()

	site, err := s.resolver.Resolve(s.ctx, "en", "wikipedia")
	s.Require().NoError(err)
	s.Require().NoError(site.LockPage("Foo", false))
	saved := site.Identity()

	restored, err := New(s.dir)
	s.Require().NoError(err)

	fresh, err := restored.FromIdentity(s.ctx, saved)
	s.Require().NoError(err)
	s.True(fresh.Identity().Equal(saved))
	s.Zero(fresh.LockedPages(), "restored sites hold no page locks")

	again, err := restored.Resolve(s.ctx, "en", "wikipedia")
	s.Require().NoError(err)
	s.Same(fresh, again)
}

func (s *ResolverSuite) TestWarmFamily() {
	s.expectWikipedia()

	s.Require().NoError(s.resolver.WarmFamily(s.ctx, "wikipedia", []string{"en", "de", "fr"}))

	site, err := s.resolver.Resolve(s.ctx, "de", "wikipedia")
	s.Require().NoError(err)
	s.Equal("de", site.Code())

	err = s.resolver.WarmFamily(s.ctx, "wikipedia", []string{"no", "xx"})
	s.Require().Error(err)

	var unknown *models.UnknownSiteError
	s.ErrorAs(err, &unknown)
}
