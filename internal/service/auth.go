package service

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/harborview/fleetwatch/internal/domain"
)

var tracer = otel.Tracer("service")

type AuthService struct {
	secret []byte
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{secret: []byte(secret)}
}

type identityClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthToken validates a bearer token and resolves the requester identity.
// An unrecognized role claim degrades to RoleUnknown instead of erroring;
// downstream policy denies those requests.
func (s *AuthService) AuthToken(ctx context.Context, token string) (domain.Identity, error) {
	_, span := tracer.Start(ctx, "Auth.Service.AuthToken")
	defer span.End()

	var claims identityClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		span.RecordError(errors.Wrap(err, "jwt validation failed"))
		return domain.Identity{}, err
	}
	if !parsed.Valid {
		err := fmt.Errorf("invalid token")
		span.RecordError(err)
		return domain.Identity{}, err
	}

	if claims.Subject == "" {
		err := fmt.Errorf("missing subject claim")
		span.RecordError(err)
		return domain.Identity{}, err
	}

	return domain.Identity{
		Role:   domain.ParseRole(claims.Role),
		UserID: claims.Subject,
		Email:  claims.Email,
	}, nil
}

// IssueToken mints a signed identity token. Used by operator tooling and the
// service tests; production tokens come from the upstream identity provider
// with the same shared secret.
func (s *AuthService) IssueToken(identity domain.Identity, expiresAt jwt.NumericDate) (string, error) {
	claims := identityClaims{
		Role:  identity.Role.String(),
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			ExpiresAt: &expiresAt,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
