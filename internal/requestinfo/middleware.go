//
//  internal/requestinfo/middleware.go
//
//  Enrich parses the User-Agent header and resolves the client IP once per
//  request, then stores the result in the request context.  Handlers that
//  persist leads pull it back out with FromContext; everything else ignores
//  it for free.
//

package requestinfo

import (
	"net/http"
	"time"
)

// Enrich is standard chi-compatible middleware.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := &RequestInfo{
			UA:        parseUA(r.UserAgent()),
			Geo:       lookupGeo(r.RemoteAddr),
			Referrer:  r.Referer(),
			Timestamp: time.Now(),
		}
		ctx := contextWith(r.Context(), info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
