package http

import (
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/domain/blog"
	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/handlers/http/request"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type updateBlogHandler struct {
	logger       *logrus.Logger
	repo         blog.Repository
	auditService auditlogs.Service
}

func NewUpdateBlogHandler(logger *logrus.Logger, repo blog.Repository, auditService auditlogs.Service) Handler {
	return &updateBlogHandler{
		logger:       logger,
		repo:         repo,
		auditService: auditService,
	}
}

// Handle @Summary Update a blog post
// @Description Replaces the editable fields; the slug follows the title
// @Tags Blog
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param post_id path string true "Post ID"
// @Param post body request.BlogPostRequest true "Post"
// @Success 200 {object} blog.Post
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Router /api/admin/blogs/{post_id} [put]
func (h *updateBlogHandler) Handle(c *fiber.Ctx) error {
	postID, err := pathUUID(c, "post_id")
	if err != nil {
		return fail(c, err)
	}

	var req request.BlogPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	post, err := h.repo.GetByID(c.Context(), postID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		h.logger.WithError(err).Error("failed to load blog post")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	if err := post.Apply(req.Title, req.Content, req.Excerpt, req.Tags, req.Published); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.repo.Update(c.Context(), post); err != nil {
		if errors.Is(err, blog.ErrSlugTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to update blog post")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	if h.auditService != nil {
		h.auditService.Emit(c, auditlogs.Event{
			Event: auditlogs.EventInfo{
				Type:        auditlogs.EventTypeBlogUpdated,
				Category:    auditlogs.CategoryContent,
				Description: "blog post updated",
			},
			Target: auditlogs.Target{Type: auditlogs.TargetTypeBlog, ID: post.ID.String(), Name: post.Slug},
		})
	}
	return c.JSON(post)
}
