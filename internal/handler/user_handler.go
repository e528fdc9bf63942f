package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pixelforge/pixelforge-backend/internal/service"
)

type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

func (h *UserHandler) Credits(c *fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	user, err := h.userService.Credits(userID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"credits": user.CreditBalance,
		"user":    fiber.Map{"name": user.Name},
	})
}
