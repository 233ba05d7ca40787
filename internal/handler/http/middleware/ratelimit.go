package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/ulule/limiter/v3"
)

// RateLimit throttles requests per employee, falling back to the client
// address when the token carries no employee.
func RateLimit(limiterInstance *limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			key, err := jwt.EmployeeID(r.Context())
			if err != nil {
				key = limiterInstance.GetIPKey(r)
			}

			context, err := limiterInstance.Get(r.Context(), key)
			if err != nil {
				slog.Error("Failed to get rate limit context", "key", key, "error", err)
				response.InternalServerError(w, "Internal server error during rate limit check")
				return
			}

			if context.Reached {
				slog.Warn("Rate limit exceeded", "key", key, "limit", context.Limit)
				response.TooManyRequests(w, "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
