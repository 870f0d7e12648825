package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/platform/actor"
	"github.com/georgemunganga/restaurant-pos/internal/platform/web"
)

// Middleware rejects requests without a valid bearer token and stores the
// staff member in the request context.
func Middleware(svc Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				web.Error(w, r, log, apperr.Unauthorized("authorization must be 'Bearer <token>'"))
				return
			}

			claims, err := svc.Verify(parts[1])
			if err != nil {
				web.Error(w, r, log, err)
				return
			}

			ctx := actor.WithStaff(r.Context(), actor.Staff{
				ID:       claims.StaffID,
				BranchID: claims.BranchID,
				Role:     claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
