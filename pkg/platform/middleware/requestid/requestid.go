// Package requestid assigns every request an ID, honoring an inbound
// X-Request-ID header when the caller supplies a well-formed one.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"foiagate/pkg/requestcontext"
)

// Header is the request and response header carrying the ID.
const Header = "X-Request-ID"

// Middleware stores the request ID in the context and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
