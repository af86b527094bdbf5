// Package site resolves canonical site identities against family metadata
// and carries the per-site runtime: namespace table, title equivalence and
// the page lock registry.
package site

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"wikisite/internal/family"
	"wikisite/internal/site/metrics"
	"wikisite/internal/site/models"
	dErrors "wikisite/pkg/domain-errors"
	"wikisite/pkg/platform/audit"
	"wikisite/pkg/platform/sentinel"
)

// Resolver canonicalizes (code, family) requests into sites. Each distinct
// pair is constructed once and shared; concurrent first requests for the
// same pair are deduplicated.
type Resolver struct {
	dir      family.Directory
	logger   *slog.Logger
	metrics  *metrics.Metrics
	audit    audit.Publisher
	defaults *Defaults

	mu    sync.RWMutex
	sites map[string]*Site
	group singleflight.Group
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger attaches a structured logger for resolution diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithMetrics attaches resolution and lock metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithAuditPublisher attaches a sink for maintenance-relevant events.
func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(r *Resolver) {
		r.audit = publisher
	}
}

// WithDefaults attaches the process default-site context, opting in to the
// default-language update on single-language-family fallback.
func WithDefaults(defaults *Defaults) Option {
	return func(r *Resolver) {
		r.defaults = defaults
	}
}

// New constructs a Resolver over a family directory.
func New(dir family.Directory, opts ...Option) (*Resolver, error) {
	if dir == nil {
		return nil, errors.New("family directory is required")
	}

	r := &Resolver{
		dir:   dir,
		sites: make(map[string]*Site),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r, nil
}

// Resolve canonicalizes a requested (code, family) pair into a Site.
//
// Case differences and out-of-charset codes are logged, never rejected.
// Obsolete aliases redirect to their replacement or mark the site obsolete.
// A code unknown to the family fails with UnknownSiteError unless the
// family is a single-language family named after itself, in which case the
// family name is adopted as the code.
func (r *Resolver) Resolve(ctx context.Context, code, familyName string) (*Site, error) {
	requestKey := familyName + ":" + strings.ToLower(code)
	if site := r.lookup(requestKey); site != nil {
		return site, nil
	}

	v, err, _ := r.group.Do(requestKey, func() (any, error) {
		if site := r.lookup(requestKey); site != nil {
			return site, nil
		}
		site, err := r.build(ctx, code, familyName)
		if err != nil {
			return nil, err
		}
		return r.remember(requestKey, site), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Site), nil
}

// FromIdentity rebuilds a runtime Site from a persisted identity. The
// restored site starts cold: empty namespace cache and zero held page
// locks, regardless of what was held when the identity was saved.
func (r *Resolver) FromIdentity(ctx context.Context, identity models.Identity) (*Site, error) {
	key := identity.Key()
	if site := r.lookup(key); site != nil {
		return site, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		if site := r.lookup(key); site != nil {
			return site, nil
		}
		fam, err := r.dir.Find(ctx, identity.Family)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, &models.UnknownSiteError{Code: identity.Code, Family: identity.Family}
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up family")
		}
		return r.remember(key, newSite(identity, fam, r.logger, r.metrics)), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Site), nil
}

// WarmFamily resolves many codes of one family concurrently, stopping at
// the first failure. Useful before interwiki passes that touch most
// languages of a family.
func (r *Resolver) WarmFamily(ctx context.Context, familyName string, codes []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, code := range codes {
		code := code
		g.Go(func() error {
			_, err := r.Resolve(ctx, code, familyName)
			return err
		})
	}
	return g.Wait()
}

func (r *Resolver) lookup(key string) *Site {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sites[key]
}

// remember stores a freshly built site under both the requested and the
// canonical key. When another request already built the canonical site
// (e.g. through an alias), the existing instance wins so equal identities
// always share one Site and one lock registry.
func (r *Resolver) remember(requestKey string, site *Site) *Site {
	canonicalKey := site.Identity().Key()

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sites[canonicalKey]; ok {
		site = existing
	}
	r.sites[canonicalKey] = site
	r.sites[requestKey] = site
	return site
}

func (r *Resolver) build(ctx context.Context, requested, familyName string) (*Site, error) {
	fam, err := r.dir.Find(ctx, familyName)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			r.metrics.ResolveUnknown()
			return nil, &models.UnknownSiteError{Code: strings.ToLower(requested), Family: familyName}
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up family")
	}

	code := requested
	if lower := strings.ToLower(code); lower != code {
		audit.LogAudit(ctx, r.logger, r.audit,
			audit.NewEvent(audit.CategoryOperations, audit.EventCodeLowercased, fam.Name, lower),
			"requested", code, "detail", lower)
		code = lower
	}
	if !fam.AllowedCode(code) {
		r.logger.WarnContext(ctx, "site code contains invalid characters",
			"code", code, "family", fam.Name)
	}

	obsolete := false
	if replacement, known := fam.AliasFor(code); known {
		r.metrics.ObsoleteCodeUsed()
		if replacement != "" {
			event := audit.NewEvent(audit.CategoryMaintenance, audit.EventAliasRedirect, fam.Name, code)
			event.Detail = replacement
			audit.LogAudit(ctx, r.logger, r.audit, event, "replacement", replacement)
			code = replacement
		} else {
			// Retired with no successor: the site stays addressable under
			// its old code but is flagged to prevent write access.
			obsolete = true
			audit.LogAudit(ctx, r.logger, r.audit,
				audit.NewEvent(audit.CategoryMaintenance, audit.EventObsoleteCode, fam.Name, code))
		}
	} else if !fam.HasLanguage(code) {
		if !fam.IsSingleLanguage() {
			r.metrics.ResolveUnknown()
			return nil, &models.UnknownSiteError{Code: code, Family: fam.Name}
		}
		r.promoteDefaultLanguage(ctx, fam.Name, code)
		event := audit.NewEvent(audit.CategoryOperations, audit.EventSingleLanguageFallback, fam.Name, code)
		event.Detail = fam.Name
		audit.LogAudit(ctx, r.logger, r.audit, event, "adopted", fam.Name)
		code = fam.Name
	}

	identity := models.Identity{Code: code, Family: fam.Name, Obsolete: obsolete}
	r.metrics.ResolveSucceeded()
	return newSite(identity, fam, r.logger, r.metrics), nil
}

// promoteDefaultLanguage applies the observable side effect of the
// single-language fallback: when the rewritten request targeted the process
// default site, the default language follows the adopted code.
func (r *Resolver) promoteDefaultLanguage(ctx context.Context, familyName, requestedCode string) {
	if r.defaults == nil || !r.defaults.Matches(familyName, requestedCode) {
		return
	}
	r.defaults.SetLanguage(familyName)
	r.logger.WarnContext(ctx, "default language changed while resolving site",
		"family", familyName, "language", familyName, "requested", requestedCode)
	audit.LogAudit(ctx, r.logger, r.audit,
		audit.NewEvent(audit.CategoryOperations, audit.EventDefaultLanguageChanged, familyName, requestedCode),
		"detail", familyName)
}
