package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"stayhub/internal/domain"
)

type ctxKey int

const principalKey ctxKey = iota

// Auth mints and verifies the HS256 bearer tokens carrying {user_id, role}.
type Auth struct {
	secret []byte
	ttl    time.Duration
}

func NewAuth(secret string, ttl time.Duration) *Auth {
	return &Auth{secret: []byte(secret), ttl: ttl}
}

func (a *Auth) Token(u domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    string(u.Role),
		"exp":     time.Now().Add(a.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Auth) parse(token string) (domain.Principal, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !tok.Valid {
		return domain.Principal{}, domain.E(domain.ErrForbidden, "invalid or expired token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Principal{}, domain.E(domain.ErrForbidden, "invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return domain.Principal{}, domain.E(domain.ErrForbidden, "invalid token claims")
	}
	return domain.Principal{UserID: userID, Role: domain.Role(role)}, nil
}

// Require rejects requests without a valid bearer token and stores the
// principal in the request context.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			writeErrStatus(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		p, err := a.parse(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			writeErrStatus(w, http.StatusUnauthorized, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	})
}

func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}
