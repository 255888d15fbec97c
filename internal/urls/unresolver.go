package urls

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Errors raised while classifying a hostname. Handlers map all of them to a
// 404 rather than exposing the distinction to visitors.
var (
	// ErrSuspiciousHostname is returned for hostnames that contain the
	// public or external domain without being a direct subdomain of it
	// (docs.docshore.io.example.com). Some of those could be legitimate,
	// but they pattern-match phishing, so they're rejected outright.
	ErrSuspiciousHostname = errors.New("suspicious hostname")

	// ErrInvalidSubdomain is returned when a public-domain subdomain
	// doesn't parse as a project slug.
	ErrInvalidSubdomain = errors.New("invalid subdomain")

	// ErrInvalidExternalDomain is returned when an external-versions
	// hostname doesn't carry the <project>--<version> subdomain format.
	ErrInvalidExternalDomain = errors.New("invalid external versions domain")
)

// DomainSource says where an unresolved domain's project mapping came from.
type DomainSource string

const (
	// SourcePlatform is the platform's own hostname: dashboard, homepage,
	// marketing pages.
	SourcePlatform DomainSource = "platform"

	// SourcePublicDomain is a project subdomain of the public docs
	// domain.
	SourcePublicDomain DomainSource = "public_domain"

	// SourceExternalDomain is a pull-request build subdomain of the
	// external versions domain.
	SourceExternalDomain DomainSource = "external_domain"

	// SourceCustomDomain is a project-owned custom domain.
	SourceCustomDomain DomainSource = "custom_domain"
)

// UnresolvedDomain carries the parts extracted from a hostname.
type UnresolvedDomain struct {
	// SourceDomain is the normalized hostname the information was
	// extracted from.
	SourceDomain string

	Source DomainSource

	// ProjectSlug is the slug of the project the hostname maps to.
	// Empty for SourcePlatform.
	ProjectSlug string

	// ExternalVersionSlug is set for SourceExternalDomain hostnames,
	// which name a specific pull-request build.
	ExternalVersionSlug string
}

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Unresolver classifies hostnames against the platform's configured domains.
type Unresolver struct {
	platformDomain string
	publicDomain   string
	externalDomain string

	// customDomains maps a hostname to the slug of the project that
	// registered it. nil means no custom domains are served.
	customDomains func(domain string) (string, bool)
}

// NewUnresolver builds an Unresolver. platformDomain serves the dashboard
// and homepage, publicDomain serves project docs on subdomains, and
// externalDomain serves pull-request builds. customDomains may be nil.
func NewUnresolver(platformDomain, publicDomain, externalDomain string, customDomains func(string) (string, bool)) *Unresolver {
	return &Unresolver{
		platformDomain: NormalizeHost(platformDomain),
		publicDomain:   NormalizeHost(publicDomain),
		externalDomain: NormalizeHost(externalDomain),
		customDomains:  customDomains,
	}
}

// NormalizeHost lowercases a hostname and strips any port.
func NormalizeHost(host string) string {
	host = strings.ToLower(host)
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return host
}

// UnresolveDomain extracts the project mapping from a hostname.
func (u *Unresolver) UnresolveDomain(host string) (*UnresolvedDomain, error) {
	domain := NormalizeHost(host)

	if domain == u.platformDomain {
		return &UnresolvedDomain{
			SourceDomain: domain,
			Source:       SourcePlatform,
		}, nil
	}

	subdomain, rootDomain, _ := strings.Cut(domain, ".")

	if u.publicDomain != "" && strings.Contains(domain, u.publicDomain) {
		// serve from the public domain, ensuring it looks like
		// foo.<publicDomain>; anything else that merely contains our
		// domain is blocked
		if rootDomain != u.publicDomain {
			return nil, fmt.Errorf("%w: %q", ErrSuspiciousHostname, domain)
		}
		if !slugPattern.MatchString(subdomain) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSubdomain, domain)
		}
		return &UnresolvedDomain{
			SourceDomain: domain,
			Source:       SourcePublicDomain,
			ProjectSlug:  subdomain,
		}, nil
	}

	if u.externalDomain != "" && strings.Contains(domain, u.externalDomain) {
		if rootDomain != u.externalDomain {
			return nil, fmt.Errorf("%w: %q", ErrSuspiciousHostname, domain)
		}
		project, version, found := cutLast(subdomain, "--")
		if !found || !slugPattern.MatchString(project) || version == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidExternalDomain, domain)
		}
		return &UnresolvedDomain{
			SourceDomain:        domain,
			Source:              SourceExternalDomain,
			ProjectSlug:         project,
			ExternalVersionSlug: version,
		}, nil
	}

	if u.customDomains != nil {
		if slug, ok := u.customDomains(domain); ok {
			return &UnresolvedDomain{
				SourceDomain: domain,
				Source:       SourceCustomDomain,
				ProjectSlug:  slug,
			}, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidSubdomain, domain)
}

// cutLast splits s around the last occurrence of sep.
func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
