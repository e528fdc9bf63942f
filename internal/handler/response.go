package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pixelforge/pixelforge-backend/internal/middleware"
	"github.com/pixelforge/pixelforge-backend/internal/models"
	"github.com/pixelforge/pixelforge-backend/pkg/apperror"
)

// writeError converts any error into the uniform {success:false, message}
// envelope with the taxonomy's HTTP status. Server-side failures are logged
// here so no error leaves the process unrecorded.
func writeError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	domainErr := apperror.ToDomainError(err)
	if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.Path()),
			zap.String("code", domainErr.Code),
			zap.Error(err))
	} else {
		logger.Warn("request rejected",
			zap.String("path", c.Path()),
			zap.String("code", domainErr.Code),
			zap.String("message", domainErr.Message))
	}
	return c.Status(domainErr.HTTPStatus).JSON(models.ErrorResponse(domainErr.Message))
}

// authedUserID pulls the user id the auth middleware stored, rejecting the
// request if the route was wired without it.
func authedUserID(c *fiber.Ctx) (uint, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return 0, apperror.NewUnauthorized("Not Authorized. Login Again")
	}
	return userID, nil
}
