package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	commonhttp "github.com/inkwellhq/inkwell/internal/common/http"
	"github.com/inkwellhq/inkwell/internal/common/logger"
	"github.com/inkwellhq/inkwell/internal/observability/metrics"
	userdomain "github.com/inkwellhq/inkwell/internal/user/domain"
)

type Claims struct {
	UserID   string
	Username string
}

// UserFinder confirms the token subject still resolves in the identity store.
type UserFinder interface {
	FindByID(ctx context.Context, id userdomain.UserID) (userdomain.User, error)
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

// Middleware authenticates the bearer token and attaches the resolved claims
// to the request context. Every failure mode surfaces as the same 401; the
// underlying reason only reaches the log.
func Middleware(secret string, users UserFinder, log *logger.Logger) func(next http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
				log.Warnf("auth failed path=%s: missing or invalid authorization header", r.URL.Path)
				rejectUnauthenticated(w)
				return
			}

			tokenString := strings.TrimPrefix(raw, "Bearer ")
			claims, err := parseToken(tokenString, secretBytes)
			if err != nil {
				log.Warnf("auth failed path=%s: %v", r.URL.Path, err)
				rejectUnauthenticated(w)
				return
			}

			if _, err := users.FindByID(r.Context(), userdomain.UserID(claims.UserID)); err != nil {
				log.Warnf("auth failed path=%s: subject no longer resolves: %v", r.URL.Path, err)
				rejectUnauthenticated(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rejectUnauthenticated(w http.ResponseWriter) {
	metrics.TokenVerificationsFailed.Inc()
	commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeUnauthenticated, "authentication required", nil, "")
}

func FromContext(ctx context.Context) (Claims, bool) {
	val := ctx.Value(claimsKey)
	claims, ok := val.(Claims)
	return claims, ok
}

func ParseToken(tokenString string, secret []byte) (Claims, error) {
	return parseToken(tokenString, secret)
}

func parseToken(tokenString string, secret []byte) (Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return Claims{}, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims type")
	}

	sub, _ := mapClaims["sub"].(string)
	username, _ := mapClaims["usr"].(string)
	if sub == "" || username == "" {
		return Claims{}, errors.New("missing sub or usr claims")
	}

	return Claims{
		UserID:   sub,
		Username: username,
	}, nil
}
