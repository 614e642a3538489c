package testutil

import (
	"net/http"
	"time"

	"foiagate/pkg/requestcontext"
)

// WithRequestID adds a request ID to the request context.
// This simulates what the requestid middleware does for every request.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithRequestTime pins the request-scoped "now" so responses carrying
// timestamps can be asserted exactly.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
