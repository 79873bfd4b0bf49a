package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	autherrors "go-vacation/internal/auth/errors"
	"go-vacation/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the identity provider puts into an access token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

//go:generate mockgen -source=auth_token.go -destination=mock/auth_token_mock.go -package=mock
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

type hmacVerifier struct {
	secret []byte
	issuer string
}

// NewVerifier checks HS256 tokens signed with secret. When issuer is not
// empty the iss claim must match it.
func NewVerifier(secret, issuer string) TokenVerifier {
	return &hmacVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *hmacVerifier) Verify(tokenString string) (domain.Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, autherrors.ErrTokenExpired
		}
		return domain.Identity{}, autherrors.ErrInvalidToken
	}
	if !token.Valid {
		return domain.Identity{}, autherrors.ErrInvalidToken
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return domain.Identity{}, autherrors.ErrMissingSubject
	}
	if strings.TrimSpace(claims.Email) == "" {
		return domain.Identity{}, autherrors.ErrMissingEmail
	}

	name := strings.TrimSpace(claims.Name)
	if name == "" {
		name = claims.Email
	}

	return domain.Identity{
		ExternalID:  claims.Subject,
		Email:       strings.ToLower(strings.TrimSpace(claims.Email)),
		DisplayName: name,
	}, nil
}

// IssueToken signs a token in the provider's format. It is used by local
// tooling and tests; production tokens come from the identity provider.
func IssueToken(secret, issuer string, id domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: id.Email,
		Name:  id.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ExternalID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
