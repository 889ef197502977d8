package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/harborview/fleetwatch/internal/domain"
	"github.com/harborview/fleetwatch/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// IdentifyIdentity resolves the requester identity from a bearer token and
// stores it on the request context. A missing or invalid token does not fail
// the request here; handlers see no identity and the visibility policy
// denies on its own.
func (s *AuthMiddleware) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyIdentity")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")

		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skipCheckAuthorization
			}

			authType, token := split[0], split[1]
			if authType != "Bearer" {
				span.RecordError(fmt.Errorf("only Bearer is acceptable"))
				goto skipCheckAuthorization
			}

			identity, err := s.auth.AuthToken(ctx, token)
			if err != nil {
				span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyIdentity: token validation failed"))
				goto skipCheckAuthorization
			}

			ctx = context.WithValue(ctx, domain.IdentityCtxKey, identity)
			span.SetAttributes(attribute.String("RequesterId", identity.UserID))
		}

	skipCheckAuthorization:

		// Trusted internal callers behind the gateway identify themselves
		// with plain requester headers instead of a token.
		if ctx.Value(domain.IdentityCtxKey) == nil {
			if userID := c.Request().Header.Get(domain.RequesterIdHeader); userID != "" {
				identity := domain.Identity{
					Role:   domain.ParseRole(c.Request().Header.Get(domain.RequesterRoleHeader)),
					UserID: userID,
					Email:  c.Request().Header.Get(domain.RequesterEmailHeader),
				}
				ctx = context.WithValue(ctx, domain.IdentityCtxKey, identity)
			}
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
