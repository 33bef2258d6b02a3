package http

import (
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/domain/blog"
	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type deleteBlogHandler struct {
	logger       *logrus.Logger
	repo         blog.Repository
	auditService auditlogs.Service
}

func NewDeleteBlogHandler(logger *logrus.Logger, repo blog.Repository, auditService auditlogs.Service) Handler {
	return &deleteBlogHandler{
		logger:       logger,
		repo:         repo,
		auditService: auditService,
	}
}

// Handle @Summary Delete a blog post
// @Tags Blog
// @Param Authorization header string true "Bearer token"
// @Param post_id path string true "Post ID"
// @Success 204 "Post deleted"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Router /api/admin/blogs/{post_id} [delete]
func (h *deleteBlogHandler) Handle(c *fiber.Ctx) error {
	postID, err := pathUUID(c, "post_id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.repo.Delete(c.Context(), postID); err != nil {
		if errors.Is(err, domainErrors.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		h.logger.WithError(err).Error("failed to delete blog post")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	if h.auditService != nil {
		h.auditService.Emit(c, auditlogs.Event{
			Event: auditlogs.EventInfo{
				Type:        auditlogs.EventTypeBlogDeleted,
				Category:    auditlogs.CategoryContent,
				Description: "blog post deleted",
			},
			Target: auditlogs.Target{Type: auditlogs.TargetTypeBlog, ID: postID.String()},
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
