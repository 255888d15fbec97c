package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/docshore/web/internal/urls"
)

// DomainGuard returns a middleware that keeps this server serving only the
// platform's own hostname. Project hostnames (docs subdomains, pull-request
// build domains, custom domains) are redirected to the project's page on the
// platform domain; suspicious or unknown hostnames get a 404.
//
// skip disables the guard, for development where the host is localhost.
func DomainGuard(unresolver *urls.Unresolver, platformDomain string, skip bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip {
				next.ServeHTTP(w, r)
				return
			}

			unresolved, err := unresolver.UnresolveDomain(r.Host)
			if err != nil {
				logger.Warn("rejected hostname", "host", r.Host, "error", err)
				http.NotFound(w, r)
				return
			}
			if unresolved.Source == urls.SourcePlatform {
				next.ServeHTTP(w, r)
				return
			}

			target := fmt.Sprintf("https://%s/projects/%s/", platformDomain, unresolved.ProjectSlug)
			http.Redirect(w, r, target, http.StatusFound)
		})
	}
}
