package http

import (
	"github.com/NeuralTrust/BotTracker/pkg/detection"
	"github.com/gofiber/fiber/v2"
)

type signaturesHandler struct {
	classifier detection.Classifier
}

func NewSignaturesHandler(classifier detection.Classifier) Handler {
	return &signaturesHandler{classifier: classifier}
}

// Handle @Summary Known AI bots
// @Description The crawler signatures the classifier recognises
// @Tags Signatures
// @Produce json
// @Success 200 {array} detection.Signature
// @Router /api/signatures [get]
func (h *signaturesHandler) Handle(c *fiber.Ctx) error {
	return c.JSON(h.classifier.Signatures())
}
