package serverutils

import (
	"errors"
	"net/http/httptest"
	"testing"

	"shell-assistant-be/pkg/dispatch"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandlerMapsRouteErrorKinds(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/infra", func(c *fiber.Ctx) error {
		return dispatch.NewRouteError(dispatch.KindInfrastructure, "failed to commit doc sync", errors.New("db down"))
	})
	app.Get("/stale", func(c *fiber.Ctx) error {
		return dispatch.NewRouteError(dispatch.KindStaleKnownTerms, "failed to reload term snapshot", nil)
	})

	tests := []struct {
		path   string
		status int
	}{
		{"/infra", fiber.StatusInternalServerError},
		{"/stale", fiber.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		assert.NoError(t, err)
		assert.Equal(t, tt.status, resp.StatusCode, tt.path)
	}
}
