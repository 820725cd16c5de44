package auth

import (
	"errors"
	"time"

	autherrors "github.com/MuleAlemuB/project1-sub002/internal/auth/errors"
	"github.com/MuleAlemuB/project1-sub002/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 24 * time.Hour

// Claims carries the identity id in sub plus the role and identity kind.
type Claims struct {
	Role string `json:"role"`
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newTokenIssuer(secret []byte, ttl time.Duration) *tokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &tokenIssuer{secret: secret, ttl: ttl, now: time.Now}
}

func (t *tokenIssuer) issue(subject string, kind domain.IdentityKind, role domain.Role) (string, time.Time, error) {
	issuedAt := t.now()
	expiresAt := issuedAt.Add(t.ttl)
	claims := Claims{
		Role: role.String(),
		Kind: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, autherrors.ErrTokenGenerationFailed
	}
	return signed, expiresAt, nil
}

func (t *tokenIssuer) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
