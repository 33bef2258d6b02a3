package http

import (
	"github.com/NeuralTrust/BotTracker/pkg/domain/blog"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listBlogsHandler struct {
	logger *logrus.Logger
	repo   blog.Repository
}

func NewListBlogsHandler(logger *logrus.Logger, repo blog.Repository) Handler {
	return &listBlogsHandler{logger: logger, repo: repo}
}

// Handle @Summary List published blog posts
// @Tags Blog
// @Produce json
// @Success 200 {array} blog.Post
// @Router /api/blogs [get]
func (h *listBlogsHandler) Handle(c *fiber.Ctx) error {
	posts, err := h.repo.List(c.Context(), true)
	if err != nil {
		h.logger.WithError(err).Error("failed to list blog posts")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	if posts == nil {
		posts = []blog.Post{}
	}
	return c.JSON(posts)
}
