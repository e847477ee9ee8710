package serverutils

import (
	"errors"
	"log"

	"shell-assistant-be/pkg/dispatch"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping controllers into the
// standard envelope. Routing itself never surfaces RouteError to the client
// per turn; these mappings cover the management endpoints.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		var routeErr *dispatch.RouteError
		if errors.As(err, &routeErr) {
			return ctx.Status(statusForKind(routeErr.Kind)).JSON(ErrorResponse(routeErr.Msg))
		}

		log.Printf("[ERROR] Unhandled error: %v", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}

func statusForKind(kind dispatch.ErrorKind) int {
	switch kind {
	case dispatch.KindNoMatch:
		return fiber.StatusNotFound
	case dispatch.KindAmbiguousMatch, dispatch.KindBadgeNotFound:
		return fiber.StatusConflict
	case dispatch.KindStaleKnownTerms:
		return fiber.StatusServiceUnavailable
	case dispatch.KindClassifierTimeout, dispatch.KindClassifierError:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
