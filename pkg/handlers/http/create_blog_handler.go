package http

import (
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/domain/blog"
	"github.com/NeuralTrust/BotTracker/pkg/handlers/http/request"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createBlogHandler struct {
	logger       *logrus.Logger
	repo         blog.Repository
	auditService auditlogs.Service
}

func NewCreateBlogHandler(logger *logrus.Logger, repo blog.Repository, auditService auditlogs.Service) Handler {
	return &createBlogHandler{
		logger:       logger,
		repo:         repo,
		auditService: auditService,
	}
}

// Handle @Summary Create a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param post body request.BlogPostRequest true "Post"
// @Success 201 {object} blog.Post
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 409 {object} map[string]interface{} "Slug already in use"
// @Router /api/admin/blogs [post]
func (h *createBlogHandler) Handle(c *fiber.Ctx) error {
	authorID, err := currentUser(c)
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

	post, err := blog.New(authorID, req.Title, req.Content, req.Excerpt, req.Tags, req.Published)
	if err != nil {
		if errors.Is(err, blog.ErrTitleRequired) || errors.Is(err, blog.ErrContentRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to build blog post")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	if err := h.repo.Create(c.Context(), post); err != nil {
		if errors.Is(err, blog.ErrSlugTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to create blog post")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	if h.auditService != nil {
		h.auditService.Emit(c, auditlogs.Event{
			Event: auditlogs.EventInfo{
				Type:        auditlogs.EventTypeBlogCreated,
				Category:    auditlogs.CategoryContent,
				Description: "blog post created",
			},
			Target: auditlogs.Target{Type: auditlogs.TargetTypeBlog, ID: post.ID.String(), Name: post.Slug},
		})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}
