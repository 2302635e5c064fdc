package cart

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"GlowMart/internal/notify"
	"GlowMart/pkg/kit"
)

// SessionHeader is set by the gateway after it verifies the session token.
const SessionHeader = "X-Session-Id"

type ctxKey string

const sessionKey ctxKey = "session"

func SessionFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(sessionKey).(string)
	return v, ok && v != ""
}

// RequireSession rejects requests without a well-formed session id and
// attaches a notification recorder for the response.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := r.Header.Get(SessionHeader)
		if sid == "" {
			kit.WriteError(w, r, http.StatusUnauthorized, "missing session", nil)
			return
		}
		if err := uuid.Validate(sid); err != nil {
			kit.WriteError(w, r, http.StatusUnauthorized, "invalid session", nil)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sid)
		ctx = notify.WithRecorder(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
