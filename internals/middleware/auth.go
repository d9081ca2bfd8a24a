package middle

import (
	"net/http"
	"statusboard/internals/security"
	"statusboard/pkg/apperror"
	"statusboard/pkg/utils"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// WebhookAuth guards webhook endpoints with a shared API key sent as
// "Authorization: Bearer <key>".
type WebhookAuth struct {
	verifier *security.KeyVerifier
	logger   *zerolog.Logger
}

func NewWebhookAuth(verifier *security.KeyVerifier, logger *zerolog.Logger) *WebhookAuth {
	return &WebhookAuth{
		verifier: verifier,
		logger:   logger,
	}
}

// Authenticate never reads the request body. The returned error carries a
// generic message only.
func (a *WebhookAuth) Authenticate(r *http.Request) error {
	const op string = "middleware.webhook_auth.authenticate"

	key, ok := bearerToken(r)
	if !ok || !a.verifier.Verify(key) {
		return &apperror.Error{
			Kind:    apperror.Unauthorised,
			Op:      op,
			Message: "invalid or missing api key",
		}
	}
	return nil
}

func (a *WebhookAuth) Handle(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetReqID(r.Context())

		if err := a.Authenticate(r); err != nil {
			a.logger.Warn().
				Str("request_id", reqID).
				Str("path", r.URL.Path).
				Str("remote", r.RemoteAddr).
				Msg("webhook authentication failed")
			utils.FromAppError(w, reqID, err)
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
