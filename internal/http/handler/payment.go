package handler

import (
	"github.com/gofiber/fiber/v2"

	"newshub/internal/service"
)

type paymentIntentRequest struct {
	Price float64 `json:"price"`
}

// @Summary Open a card payment
// @Tags payments
// @Accept json
// @Produce json
// @Param body body paymentIntentRequest true "price in major currency units"
// @Success 200 {object} map[string]string
// @Failure 400,401 {object} errorPayload
// @Security BearerAuth
// @Router /create-payment-intent [post]
func CreatePaymentIntent(svc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req paymentIntentRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "malformed request body")
		}
		secret, err := svc.CreateIntent(c.UserContext(), req.Price)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"clientSecret": secret})
	}
}

// RecordPayment stores a payment confirmed by the gateway on the client side.
// @Summary Record a payment
// @Tags payments
// @Accept json
// @Produce json
// @Param body body service.RecordPaymentInput true "payment"
// @Success 201 {object} model.Payment
// @Failure 400,401 {object} errorPayload
// @Security BearerAuth
// @Router /payments [post]
func RecordPayment(svc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RecordPaymentInput
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "malformed request body")
		}
		p, err := svc.Record(c.UserContext(), principal(c).Email, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}
