package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwellhq/inkwell/internal/common/clock"
	commoncrypto "github.com/inkwellhq/inkwell/internal/common/crypto"
	"github.com/inkwellhq/inkwell/internal/common/jwtverify"
	"github.com/inkwellhq/inkwell/internal/observability/metrics"
	userdomain "github.com/inkwellhq/inkwell/internal/user/domain"
)

// TokenIssuer signs short-lived HS256 access tokens embedding the subject and
// expiry. Verification lives in jwtverify.
type TokenIssuer struct {
	jwtSecret      []byte
	idGenerator    commoncrypto.IDGenerator
	clock          clock.Clock
	accessTokenTTL time.Duration
}

func NewTokenIssuer(
	jwtSecret string,
	idGenerator commoncrypto.IDGenerator,
	accessTokenTTL time.Duration,
	clk clock.Clock,
) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret:      []byte(jwtSecret),
		idGenerator:    idGenerator,
		clock:          clk,
		accessTokenTTL: accessTokenTTL,
	}
}

func (ti *TokenIssuer) IssueAccessToken(user userdomain.User) (string, error) {
	jti, err := ti.idGenerator.NewID()
	if err != nil {
		return "", err
	}

	now := ti.clock.Now()
	expiresAt := now.Add(ti.accessTokenTTL)
	claims := jwt.MapClaims{
		"sub": string(user.ID),
		"usr": user.Username,
		"jti": jti,
		"exp": expiresAt.Unix(),
		"iat": now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.jwtSecret)
	if err != nil {
		return "", err
	}

	metrics.AccessTokensIssued.Inc()
	return tokenString, nil
}

func (ti *TokenIssuer) ParseToken(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.jwtSecret)
}
