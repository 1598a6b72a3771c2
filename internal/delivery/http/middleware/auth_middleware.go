package middleware

import (
	"strings"

	"forge/internal/delivery/http/response"
	"forge/internal/domain/entity"
	"forge/internal/domain/policy"
	"forge/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// KeyActor is the echo context key holding the request's policy.Actor.
const KeyActor = "actor"

// AuthMiddleware provides JWT authentication and role gating.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the access token and places the resulting actor on
// the context. Requests without a valid token are rejected.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := m.actorFromHeader(c)
		if err != nil {
			return err
		}
		if !actor.IsAuthenticated {
			return response.Unauthorized(c, "Authorization header is missing")
		}

		c.Set(KeyActor, actor)

		return next(c)
	}
}

// OptionalAuthenticate resolves an actor when a token is present and falls
// back to the anonymous actor otherwise. Used on endpoints that accept
// guest requests.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := m.actorFromHeader(c)
		if err != nil {
			return err
		}

		c.Set(KeyActor, actor)

		return next(c)
	}
}

// RequireStaff gates a route group to staff and admin actors. It must run
// after Authenticate.
func (m *AuthMiddleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := c.Get(KeyActor).(policy.Actor)
		if !ok || !actor.IsStaffOrAdmin() {
			return response.Forbidden(c, "staff role required")
		}

		return next(c)
	}
}

// RequireAdmin gates a route group to admin actors. It must run after
// Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := c.Get(KeyActor).(policy.Actor)
		if !ok || !actor.IsAdmin() {
			return response.Forbidden(c, "admin role required")
		}

		return next(c)
	}
}

// actorFromHeader parses the Authorization header into an actor. A missing
// header yields the anonymous actor; a present but invalid token is an error.
func (m *AuthMiddleware) actorFromHeader(c echo.Context) (policy.Actor, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return policy.Anonymous(), nil
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return policy.Anonymous(), response.Unauthorized(c, "invalid token format, must be Bearer token")
	}

	claims, err := m.tokenSvc.ValidateToken(tokenString)
	if err != nil {
		return policy.Anonymous(), response.Unauthorized(c, "invalid or expired token")
	}
	if claims.Type != "access" {
		return policy.Anonymous(), response.Unauthorized(c, "refresh tokens cannot be used for authentication")
	}

	role := entity.Role(claims.Role)

	return policy.Actor{
		ID:              claims.UserID,
		IsSuperuser:     role == entity.RoleAdmin,
		IsStaff:         role == entity.RoleStaff || role == entity.RoleAdmin,
		IsAuthenticated: true,
	}, nil
}
