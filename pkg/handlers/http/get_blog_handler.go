package http

import (
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/domain/blog"
	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type getBlogHandler struct {
	logger *logrus.Logger
	repo   blog.Repository
}

func NewGetBlogHandler(logger *logrus.Logger, repo blog.Repository) Handler {
	return &getBlogHandler{logger: logger, repo: repo}
}

// Handle @Summary Get a published blog post
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} blog.Post
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Router /api/blogs/{slug} [get]
func (h *getBlogHandler) Handle(c *fiber.Ctx) error {
	post, err := h.repo.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		h.logger.WithError(err).Error("failed to load blog post")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	if !post.Published {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}
	return c.JSON(post)
}
