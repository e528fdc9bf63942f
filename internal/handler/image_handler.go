package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pixelforge/pixelforge-backend/internal/models"
	"github.com/pixelforge/pixelforge-backend/internal/service"
	"github.com/pixelforge/pixelforge-backend/pkg/utils"
)

type ImageHandler struct {
	imageService *service.ImageService
	validator    *utils.Validator
	logger       *zap.Logger
}

func NewImageHandler(imageService *service.ImageService, validator *utils.Validator, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		validator:    validator,
		logger:       logger,
	}
}

func (h *ImageHandler) GenerateImage(c *fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var req models.GenerateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Prompt is required"))
	}

	result, err := h.imageService.Generate(c.UserContext(), userID, req.Prompt)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"resultImage":   result.ImageURL,
		"creditBalance": result.CreditBalance,
	})
}

func (h *ImageHandler) ListGenerations(c *fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	generations, err := h.imageService.History(userID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"generations": generations,
	})
}
