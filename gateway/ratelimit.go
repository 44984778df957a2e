package gateway

import (
	"net/http"

	"golang.org/x/time/rate"
)

// defaultAddTxRPS/defaultAddTxBurst bound the add_tx endpoint's admission
// rate, the same token-bucket shape go-ethereum's RPC layer uses to guard
// its own handlers against request floods.
const (
	defaultAddTxRPS   = 200
	defaultAddTxBurst = 400
)

// rateLimitMiddleware rejects requests once the token bucket is exhausted
// with 429, rather than queuing them behind the pipeline.
func rateLimitMiddleware(limiter *rate.Limiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
