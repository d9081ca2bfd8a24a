package middle

/**
- Work of this file -> Admin auth:
	- Validates token
	- Stores claims in context
	- Exposes a helper to retrieve claims
**/

import (
	"context"
	"net/http"
	"statusboard/internals/security"
	"statusboard/pkg/apperror"
	"statusboard/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
)

type claimsCtxKeyType struct{}

var claimsCtxKey = claimsCtxKeyType{}

type AuthMiddleware struct {
	tokenSvc *security.TokenService
}

func NewAuthMiddleware(tokenSvc *security.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: tokenSvc,
	}
}

func (a *AuthMiddleware) Handle(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		reqID := middleware.GetReqID(ctx)

		token, ok := bearerToken(r)
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "missing or invalid Authorization header")
			return
		}

		claims, err := a.tokenSvc.ValidateAccessToken(token)
		if err != nil {
			utils.FromAppError(w, reqID, err)
			return
		}

		if claims.Subject == "" {
			utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "token has no subject")
			return
		}

		newCtx := context.WithValue(ctx, claimsCtxKey, claims)
		next.ServeHTTP(w, r.WithContext(newCtx))
	}

	return http.HandlerFunc(fn)
}

func ClaimsFromContext(ctx context.Context) (*security.RequestClaims, bool) {
	claims, ok := ctx.Value(claimsCtxKey).(*security.RequestClaims)
	return claims, ok
}
