package gateway

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"GlowMart/internal/session"
	"GlowMart/pkg/kit"
)

// sessionHeader must match what the cart service reads.
const sessionHeader = "X-Session-Id"

type ctxKey string

const sessionIDKey ctxKey = "session_id"

func SessionIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(sessionIDKey).(string)
	return v, ok
}

type sessionResp struct {
	SessionToken string    `json:"session_token"`
	SessionID    string    `json:"session_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// issueSession starts a new shopper session. A request that already carries a
// valid token gets a fresh token for the same session, so the cart survives.
func issueSession(tokens *session.TokenMaker, ttl time.Duration, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			token, sid string
			err        error
		)

		if raw, ok := bearer(r); ok {
			if c, perr := tokens.Parse(raw); perr == nil {
				sid = c.SessionID
			}
		}

		if sid != "" {
			token, err = tokens.Sign(sid, ttl)
		} else {
			token, sid, err = tokens.New(ttl)
		}
		if err != nil {
			if log != nil {
				log.Error("sign session token failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
			return
		}

		kit.WriteJSON(w, http.StatusOK, sessionResp{
			SessionToken: token,
			SessionID:    sid,
			ExpiresAt:    time.Now().Add(ttl).UTC(),
		})
	}
}

func SessionJWT(tokens *session.TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				kit.WriteError(w, r, http.StatusUnauthorized, "missing session token", nil)
				return
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				kit.WriteError(w, r, http.StatusUnauthorized, "invalid session token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// InjectSession replaces any client supplied session header with the verified
// one and drops the bearer token before the request leaves the gateway.
func InjectSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Del(sessionHeader)
		r.Header.Del("Authorization")

		if sid, ok := SessionIDFromContext(r.Context()); ok && sid != "" {
			r.Header.Set(sessionHeader, sid)
		}

		next.ServeHTTP(w, r)
	})
}

func bearer(r *http.Request) (string, bool) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}
