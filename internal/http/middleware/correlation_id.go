package middleware

import (
	"net/http"

	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
)

// CorrelationID takes the correlation id from the request header, or
// generates one, stores it in the request context and echoes it back.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id := r.Header.Get(correlationid.Header); id != "" {
				ctx = correlationid.NewContext(ctx, id)
			}

			ctx, id := correlationid.Ensure(ctx)
			w.Header().Set(correlationid.Header, id)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
