// Package session issues and verifies anonymous shopper session tokens. A
// session stands in for one browser's local storage: it scopes a cart and a
// wishlist, and carries no user identity.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "glowmart-gateway"

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrShortSecret  = errors.New("session secret must be at least 32 bytes")
)

const MinSecretLen = 32

type TokenMaker struct {
	secret []byte
	now    func() time.Time
}

func NewTokenMaker(secret string) *TokenMaker {
	return &TokenMaker{secret: []byte(secret), now: time.Now}
}

// NewTokenMakerStrict rejects secrets shorter than MinSecretLen.
func NewTokenMakerStrict(secret string) (*TokenMaker, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrShortSecret
	}
	return NewTokenMaker(secret), nil
}

type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// New starts a session with a fresh id.
func (t *TokenMaker) New(ttl time.Duration) (token, sessionID string, err error) {
	sessionID = uuid.NewString()
	token, err = t.Sign(sessionID, ttl)
	return token, sessionID, err
}

// Sign issues a token for an existing session id, e.g. to extend it.
func (t *TokenMaker) Sign(sessionID string, ttl time.Duration) (string, error) {
	now := t.now()

	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *TokenMaker) Parse(tokenStr string) (Claims, error) {
	var c Claims

	token, err := jwt.ParseWithClaims(tokenStr, &c, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || token == nil || !token.Valid || c.SessionID == "" {
		return Claims{}, ErrInvalidToken
	}

	return c, nil
}
