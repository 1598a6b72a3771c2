// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"forge/internal/delivery/http/middleware"
	"forge/internal/delivery/http/response"
	domainerrors "forge/internal/domain/errors"
	"forge/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// actorFrom reads the actor placed on the context by the auth middleware.
// Routes without auth middleware yield the anonymous actor.
func actorFrom(c echo.Context) policy.Actor {
	if actor, ok := c.Get(middleware.KeyActor).(policy.Actor); ok {
		return actor
	}

	return policy.Anonymous()
}

// pathUUID parses a UUID path parameter.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name + " identifier")
	}

	return id, nil
}

// boolQuery reads a boolean query parameter, false when absent.
func boolQuery(c echo.Context, name string) bool {
	return c.QueryParam(name) == "true"
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
