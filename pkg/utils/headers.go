package utils

import (
	"strings"

	"github.com/NeuralTrust/BotTracker/pkg/detection"
	"github.com/gofiber/fiber/v2"
)

// RequestHeaders flattens the request headers, joining repeated values with ", ".
func RequestHeaders(c *fiber.Ctx) map[string]string {
	raw := c.GetReqHeaders()
	headers := make(map[string]string, len(raw))
	for k, v := range raw {
		headers[k] = strings.Join(v, ", ")
	}
	return headers
}

// ClientIP resolves the caller address from proxy headers, falling back to the
// socket peer.
func ClientIP(c *fiber.Ctx) string {
	return detection.ResolveIP(RequestHeaders(c), c.IP())
}
