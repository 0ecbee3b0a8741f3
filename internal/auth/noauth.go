package auth

import (
	"net/http"
)

// ExtractOrg sets X-Pagesmith-Org from the Basic Auth username. Auth validation
// is delegated to the reverse proxy (e.g. Caddy basicauth); we only extract the
// organization identity.
func ExtractOrg(defaultOrg string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}
			org, _, ok := r.BasicAuth()
			if ok && org != "" {
				r.Header.Set("X-Pagesmith-Org", org)
			} else {
				r.Header.Set("X-Pagesmith-Org", defaultOrg)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func OrgFromRequest(r *http.Request) string {
	return r.Header.Get("X-Pagesmith-Org")
}
