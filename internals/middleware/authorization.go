package middle

import (
	"net/http"
	"statusboard/internals/security"
	"statusboard/pkg/apperror"
	"statusboard/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
)

// AllowAdmin must run after AuthMiddleware.
func AllowAdmin(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		reqID := middleware.GetReqID(ctx)

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "user is unauthorised")
			return
		}

		if claims.Role != security.RoleAdmin {
			utils.WriteError(w, http.StatusForbidden, reqID, apperror.Forbidden, "user do not have access")
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
