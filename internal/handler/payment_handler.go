package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pixelforge/pixelforge-backend/internal/models"
	"github.com/pixelforge/pixelforge-backend/internal/service"
	"github.com/pixelforge/pixelforge-backend/pkg/utils"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	validator      *utils.Validator
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, validator *utils.Validator, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validator:      validator,
		logger:         logger,
	}
}

func (h *PaymentHandler) PayRazorpay(c *fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var req models.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Plan ID is required"))
	}

	order, err := h.paymentService.CreateOrder(userID, req.PlanID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"order": fiber.Map{
			"id":       order.ID,
			"amount":   order.Amount,
			"currency": order.Currency,
			"receipt":  order.Receipt,
		},
	})
}

func (h *PaymentHandler) VerifyRazorpay(c *fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var req models.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	credits, err := h.paymentService.VerifyPayment(userID, req.Callback())
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Credits Added Successfully",
		"credits": credits,
	})
}
